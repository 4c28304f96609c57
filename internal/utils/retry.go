package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

// RetryPolicy controls how long a startup dependency is waited for.
type RetryPolicy struct {
	ConnectTimeout time.Duration // total time allowed for all attempts
	RetryInterval  time.Duration // first wait between attempts, doubled each time
	MaxWait        time.Duration // cap for the wait between attempts
	PingTimeout    time.Duration // deadline of a single attempt
	WarnThreshold  int           // attempts logged at warn before switching to error
}

// Validate rejects non-positive durations and a negative threshold.
func (p RetryPolicy) Validate() error {
	if p.ConnectTimeout <= 0 {
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", p.ConnectTimeout)
	}
	if p.RetryInterval <= 0 {
		return fmt.Errorf("RetryInterval must be > 0, got %v", p.RetryInterval)
	}
	if p.MaxWait <= 0 {
		return fmt.Errorf("MaxWait must be > 0, got %v", p.MaxWait)
	}
	if p.PingTimeout <= 0 {
		return fmt.Errorf("PingTimeout must be > 0, got %v", p.PingTimeout)
	}
	if p.WarnThreshold < 0 {
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", p.WarnThreshold)
	}
	return nil
}

// PingWithRetry calls ping until it succeeds or ConnectTimeout elapses,
// backing off exponentially between attempts. name identifies the
// dependency in logs ("postgres", "redis").
func PingWithRetry(ctx context.Context, name string, ping func(context.Context) error, p RetryPolicy, log logger.Logger) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: invalid retry policy: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.ConnectTimeout)
	defer cancel()

	log.Info("connecting", logger.String("dependency", name), logger.Duration("timeout", p.ConnectTimeout))
	start := time.Now()
	wait := p.RetryInterval

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, p.PingTimeout)
		err := ping(pingCtx)
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected after retry",
					logger.String("dependency", name),
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected", logger.String("dependency", name))
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("dependency unavailable, giving up",
				logger.String("dependency", name),
				logger.Int("attempts", attempt),
				logger.Duration("timeout", p.ConnectTimeout),
				logger.Error(err))
			return fmt.Errorf("%s unavailable after %d attempts (timeout: %v): %w",
				name, attempt, p.ConnectTimeout, err)

		case <-timer.C:
			fields := []logger.Field{
				logger.String("dependency", name),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err),
			}
			if attempt <= p.WarnThreshold {
				log.Warn("connection failed, retrying", fields...)
			} else {
				log.Error("still unavailable, retrying", fields...)
			}
			wait *= 2
			if wait > p.MaxWait {
				wait = p.MaxWait
			}
		}
	}
}
