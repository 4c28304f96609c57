package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	APIToken string // bearer credential required by DELETE
	SeedFile string // optional YAML file inserted when the collection is empty

	// Storage
	Store            string        // "postgres" | "memory"
	DatabaseURL      string        // required when Store is postgres
	DBMaxConns       int           // pgx pool size
	DBConnectTimeout time.Duration // total time to wait for the database at startup
	DBRetryInterval  time.Duration // initial wait between pings, doubled each time
	DBMaxWait        time.Duration // cap for the wait between pings
	DBPingTimeout    time.Duration // timeout of a single ping

	// Rate limiting
	RateLimitBurst  int  // max requests in a burst per client, 0 disables limiting
	RateLimitPerMin int  // sustained requests per minute per client
	TrustProxy      bool // true => key clients by X-Forwarded-For / X-Real-IP

	// Redis (optional, shares rate-limit counters between replicas)
	RedisAddr           string        // ex: "localhost:6379", empty => in-memory limiter
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout
	RedisRT             time.Duration // Redis read timeout
	RedisWT             time.Duration // Redis write timeout
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting
}

func Load() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKMARKS_LISTEN_PORT", ":8000"),
		ShutdownTimeout: mustDuration("BOOKMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("BOOKMARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKMARKS_PRETTY_LOG", true),

		APIToken: requireEnv("API_TOKEN"),
		SeedFile: getenv("BOOKMARKS_SEED_FILE", ""),

		// Storage
		Store:            strings.ToLower(getenv("BOOKMARKS_STORE", StorePostgres)),
		DatabaseURL:      getenv("DATABASE_URL", ""),
		DBMaxConns:       getenvInt("DB_MAX_CONNS", 10),
		DBConnectTimeout: mustDuration("DB_CONNECT_TIMEOUT", 30*time.Second),
		DBRetryInterval:  mustDuration("DB_RETRY_INTERVAL", time.Second),
		DBMaxWait:        mustDuration("DB_MAX_WAIT", 5*time.Second),
		DBPingTimeout:    mustDuration("DB_PING_TIMEOUT", 3*time.Second),

		// Rate limiting
		RateLimitBurst:  getenvInt("BOOKMARKS_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("BOOKMARKS_RATE_LIMIT_PER_MIN", 120),
		TrustProxy:      mustBool("BOOKMARKS_TRUST_PROXY", false),

		// Redis settings
		RedisAddr:           getenv("BOOKMARKS_REDIS_ADDR", ""),
		RedisUser:           getenv("BOOKMARKS_REDIS_USERNAME", ""),
		RedisPassword:       getenv("BOOKMARKS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("BOOKMARKS_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Validate checks cross-field rules that single helpers cannot express.
func (c *Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when BOOKMARKS_STORE=%s", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("BOOKMARKS_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store)
	}
	if c.RateLimitBurst < 0 || c.RateLimitPerMin < 0 {
		return fmt.Errorf("rate limit settings must be >= 0")
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	cp.APIToken = "***REDACTED***"
	if cp.DatabaseURL != "" {
		cp.DatabaseURL = "***REDACTED***"
	}
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
