package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarkd/internal/config"
	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
	"github.com/MrSnakeDoc/bookmarkd/internal/gateway"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/mw"
	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
	"github.com/MrSnakeDoc/bookmarkd/internal/postgres"
	"github.com/MrSnakeDoc/bookmarkd/internal/redis"
	"github.com/MrSnakeDoc/bookmarkd/internal/sources/seed"
	"github.com/MrSnakeDoc/bookmarkd/internal/store/memory"
	pgstore "github.com/MrSnakeDoc/bookmarkd/internal/store/postgres"
	"github.com/MrSnakeDoc/bookmarkd/internal/utils"
	"github.com/MrSnakeDoc/bookmarkd/internal/version"
)

const retryWarnThreshold = 3

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	pool        *pgxpool.Pool
	redisClient *goredis.Client
	seeder      *seed.Seeder
}

// New loads configuration and connects every dependency. Startup fails fast
// when the configured database or Redis never answers.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a := &App{cfg: cfg, logger: loggerClient}

	var (
		store  gateway.Store
		checks []deps.Check
	)
	switch cfg.Store {
	case config.StoreMemory:
		mem := memory.NewStore()
		loggerClient.Warn("using in-memory store, bookmarks are lost on restart")
		store = mem
		checks = append(checks, deps.Check{Name: "store", Critical: true, Ping: mem.Ping})
	default:
		loggerClient.Info("Connecting to PostgreSQL")
		pool, err := postgres.New(ctx, postgres.ConnectOptions{
			URL:      cfg.DatabaseURL,
			MaxConns: int32(cfg.DBMaxConns),
			Retry: utils.RetryPolicy{
				ConnectTimeout: cfg.DBConnectTimeout,
				RetryInterval:  cfg.DBRetryInterval,
				MaxWait:        cfg.DBMaxWait,
				PingTimeout:    cfg.DBPingTimeout,
				WarnThreshold:  retryWarnThreshold,
			},
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.pool = pool
		store = pgstore.NewStore(pool)
		checks = append(checks, deps.Check{Name: "postgres", Critical: true, Ping: pool.Ping})
		loggerClient.Info("PostgreSQL initialized successfully")
	}

	var limiter deps.Limiter
	if cfg.RateLimitBurst > 0 {
		if cfg.RedisAddr != "" {
			loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
			rdb, err := redis.New(ctx, redis.ConnectOptions{
				Addr:         cfg.RedisAddr,
				User:         cfg.RedisUser,
				Password:     cfg.RedisPassword,
				RedisDB:      cfg.RedisDB,
				DialTimeout:  cfg.RedisDT,
				ReadTimeout:  cfg.RedisRT,
				WriteTimeout: cfg.RedisWT,
				PoolSize:     cfg.RedisPoolSize,
				Retry: utils.RetryPolicy{
					ConnectTimeout: cfg.RedisConnectTimeout,
					RetryInterval:  time.Second,
					MaxWait:        5 * time.Second,
					PingTimeout:    cfg.RedisRT,
					WarnThreshold:  retryWarnThreshold,
				},
			}, loggerClient)
			if err != nil {
				a.closeStorage()
				return nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			a.redisClient = rdb
			limiter = mw.NewRedisLimiter(rdb, cfg.RateLimitPerMin, time.Minute)
			checks = append(checks, deps.Check{
				Name: "redis",
				Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			})
			loggerClient.Info("Redis initialized successfully, rate limits are shared")
		} else {
			limiter = mw.NewMemoryLimiter(mw.RateLimitConfig{
				Burst:             cfg.RateLimitBurst,
				RefillPerIPPerMin: cfg.RateLimitPerMin,
				MaxEntries:        100_000,
			})
		}
	} else {
		loggerClient.Info("rate limiting disabled")
	}

	gw := gateway.New(store)
	validator := domain.NewValidator()

	if cfg.SeedFile != "" {
		a.seeder = seed.NewSeeder(cfg.SeedFile, validator, gw, loggerClient)
	}

	d := deps.Deps{
		Logger:     loggerClient,
		StartTime:  time.Now(),
		Version:    version.Version,
		Commit:     version.Commit,
		BuildDate:  version.BuildDate,
		GoVersion:  version.GoVersion,
		Gateway:    gw,
		Validator:  validator,
		Sanitizer:  domain.NewSanitizer(),
		APIToken:   cfg.APIToken,
		TrustProxy: cfg.TrustProxy,
		Limiter:    limiter,
		Checks:     checks,
	}
	a.server = httpserver.New(cfg, loggerClient, d)

	return a, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting bookmarkd %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("bookmarkd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer a.closeStorage()

	if a.seeder != nil {
		if _, err := a.seeder.Run(ctx); err != nil {
			return fmt.Errorf("failed to seed bookmarks: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ bookmarkd stopped cleanly")
	return nil
}

func (a *App) closeStorage() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
		a.redisClient = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.logger.Info("✅ PostgreSQL pool closed")
		a.pool = nil
	}
	_ = a.logger.Sync()
}
