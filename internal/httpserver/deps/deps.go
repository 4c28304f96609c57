package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
	"github.com/MrSnakeDoc/bookmarkd/internal/gateway"
	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

// Check is one dependency pinged by /readyz.
type Check struct {
	Name     string
	Critical bool // false => failure degrades the service but keeps it ready
	Ping     func(ctx context.Context) error
}

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (ok bool, remaining int, retryAfter time.Duration, err error)
	Limit() int
}

type Deps struct {
	Logger     logger.Logger
	StartTime  time.Time
	Version    string
	Commit     string
	BuildDate  string
	GoVersion  string
	Gateway    *gateway.Gateway  // bookmark storage access
	Validator  *domain.Validator // write payload rules
	Sanitizer  *domain.Sanitizer // output cleaning
	APIToken   string            // bearer credential for DELETE
	TrustProxy bool              // true if running behind a trusted reverse proxy
	Limiter    Limiter           // nil disables rate limiting
	Checks     []Check           // pinged by /readyz
}
