// Package ratelimit implements a fixed-window request limiter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "rl:"

// Result describes the state of a key after a hit
type Result struct {
	Allowed     bool
	Remaining   int64
	RetryAfter  time.Duration
	CurrentHits int64
}

// Limiter counts hits per purpose and key within a fixed window (INCR + EXPIRE)
type Limiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
	now    func() time.Time
}

func NewLimiter(client *redis.Client, max int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		prefix: defaultPrefix,
		max:    int64(max),
		window: window,
		now:    time.Now,
	}
}

// Allow records a hit for key under purpose and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, purpose, key string) (Result, error) {
	now := l.now().UTC()
	windowStart := now.Truncate(l.window)
	untilReset := windowStart.Add(l.window).Sub(now)
	redisKey := fmt.Sprintf("%s%s:%s:%d", l.prefix, purpose, strings.ReplaceAll(key, " ", "_"), windowStart.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to record hit: %w", err)
	}

	// the key lives until its window closes
	if incr.Val() == 1 || ttl.Val() < 0 {
		if err := l.client.Expire(ctx, redisKey, max(untilReset, time.Second)).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	hits := incr.Val()
	res := Result{
		Allowed:     hits <= l.max,
		Remaining:   max(l.max-hits, 0),
		CurrentHits: hits,
	}
	if !res.Allowed {
		res.RetryAfter = untilReset
	}

	return res, nil
}
