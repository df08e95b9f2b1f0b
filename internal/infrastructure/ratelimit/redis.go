package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter is a fixed-window limiter whose counters live in Redis, so
// every instance of the service shares them. Keys expire with their window.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	period time.Duration
}

// NewRedisLimiter namespaces counters under prefix
func NewRedisLimiter(client *redis.Client, prefix string, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		period: period,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := "ratelimit:" + l.prefix + ":" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr %s: %w", redisKey, err)
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, redisKey, l.period).Err(); err != nil {
			return Decision{}, fmt.Errorf("pexpire %s: %w", redisKey, err)
		}
	}

	if count <= int64(l.limit) {
		return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit - int(count)}, nil
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("pttl %s: %w", redisKey, err)
	}
	if ttl < 0 {
		// counter lost its expiry, restart the window
		if err := l.client.PExpire(ctx, redisKey, l.period).Err(); err != nil {
			return Decision{}, fmt.Errorf("pexpire %s: %w", redisKey, err)
		}
		ttl = l.period
	}
	return Decision{Allowed: false, Limit: l.limit, RetryAfter: ttl}, nil
}
