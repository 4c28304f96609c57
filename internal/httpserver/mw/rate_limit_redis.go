package mw

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "bookmarkd:ratelimit:"

// RedisLimiter counts requests per client in fixed windows shared by every
// replica pointing at the same Redis.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, perWindow int, window time.Duration) *RedisLimiter {
	if perWindow < 1 {
		perWindow = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{rdb: rdb, limit: perWindow, window: window, now: time.Now}
}

func (l *RedisLimiter) Limit() int { return l.limit }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, time.Duration, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, key, windowStart.Unix())

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, 0, fmt.Errorf("rate limit counter %s: %w", redisKey, err)
	}

	count := int(incr.Val())
	if count > l.limit {
		return false, 0, windowStart.Add(l.window).Sub(now), nil
	}
	return true, l.limit - count, 0, nil
}
