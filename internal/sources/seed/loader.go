package seed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Loader reads a seed file from disk.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = expandEnv(data)

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return file, nil
}

// expandEnv replaces ${NAME} with the value of the environment variable NAME.
// Unset variables become empty strings. A bare $ is left alone so URLs survive.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envRef.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
