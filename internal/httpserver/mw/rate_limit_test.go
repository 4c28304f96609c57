package mw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(cfg RateLimitConfig) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewMemoryLimiter(cfg)
	l.now = clock.Now
	l.lastSweep = clock.t
	return l, clock
}

func TestMemoryLimiter_BurstThenRefill(t *testing.T) {
	l, clock := newTestLimiter(RateLimitConfig{Burst: 3, RefillPerIPPerMin: 60})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, remaining, _, _ := l.Allow(ctx, "10.0.0.1")
		if !ok {
			t.Fatalf("request %d denied within burst", i+1)
		}
		if remaining != 2-i {
			t.Errorf("request %d remaining = %d, want %d", i+1, remaining, 2-i)
		}
	}

	ok, _, retry, _ := l.Allow(ctx, "10.0.0.1")
	if ok {
		t.Fatal("request beyond burst was allowed")
	}
	if retry != time.Second {
		t.Errorf("retryAfter = %v, want 1s", retry)
	}

	// other clients keep their own bucket
	if ok, _, _, _ := l.Allow(ctx, "10.0.0.2"); !ok {
		t.Error("independent client was denied")
	}

	clock.Advance(time.Second)
	if ok, _, _, _ := l.Allow(ctx, "10.0.0.1"); !ok {
		t.Error("request after refill was denied")
	}
}

func TestMemoryLimiter_Defaults(t *testing.T) {
	l := NewMemoryLimiter(RateLimitConfig{})
	if l.Limit() != 1 {
		t.Errorf("Limit() = %d, want 1", l.Limit())
	}
	if l.cfg.IdleTTL != 15*time.Minute || l.cfg.SweepInterval != time.Minute {
		t.Errorf("unexpected defaults: %+v", l.cfg)
	}
}

func TestMemoryLimiter_SweepsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(RateLimitConfig{Burst: 5, RefillPerIPPerMin: 5, IdleTTL: time.Minute, SweepInterval: time.Minute})
	ctx := context.Background()

	_, _, _, _ = l.Allow(ctx, "10.0.0.1")
	_, _, _, _ = l.Allow(ctx, "10.0.0.2")
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	clock.Advance(2 * time.Minute)
	_, _, _, _ = l.Allow(ctx, "10.0.0.3")
	if l.Len() != 1 {
		t.Errorf("Len() after sweep = %d, want 1", l.Len())
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, int, time.Duration, error) {
	return false, 0, 0, errors.New("redis down")
}
func (failingLimiter) Limit() int { return 10 }

func TestRateLimit_FailsOpen(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()

	RateLimit(failingLimiter{}, false, logger.NewNop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookmarks", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when the limiter errors", rec.Code)
	}
}

func TestRateLimit_Denies(t *testing.T) {
	l, _ := newTestLimiter(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 60})
	h := RateLimit(l, false, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	if first.Code != http.StatusOK {
		t.Errorf("first status = %d, want 200", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
}
