package seed

// File is the root of a seed YAML document:
//
//	bookmarks:
//	  - title: Effective Go
//	    url: https://go.dev/doc/effective_go
//	    description: idioms and conventions
//	    rating: 5
//
// Entries stay untyped so they go through the same presence and range
// checks as an HTTP payload.
type File struct {
	Bookmarks []map[string]any `yaml:"bookmarks"`
}
