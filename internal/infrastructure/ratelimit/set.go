package ratelimit

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter backends
const (
	BackendMemory      = "memory"
	BackendTokenBucket = "token_bucket"
	BackendRedis       = "redis"
)

// Named policies applied by the router
const (
	PolicyDonation = "donation"
	PolicyLogin    = "login"
	PolicyGeneral  = "general"
)

// Set holds one limiter per policy, all on the same backend
type Set struct {
	backend  string
	limiters map[string]Limiter
}

// NewSet builds a limiter for each entry of limits. The redis backend
// requires client; the in-memory backends ignore it.
func NewSet(backend string, client *redis.Client, window time.Duration, limits map[string]int) (*Set, error) {
	if backend == BackendRedis && client == nil {
		return nil, fmt.Errorf("rate limit backend %q requires a redis client", backend)
	}

	set := &Set{backend: backend, limiters: make(map[string]Limiter, len(limits))}
	for policy, limit := range limits {
		switch backend {
		case BackendMemory, "":
			set.limiters[policy] = NewFixedWindowLimiter(limit, window)
		case BackendTokenBucket:
			set.limiters[policy] = NewTokenBucketLimiter(limit, window)
		case BackendRedis:
			set.limiters[policy] = NewRedisLimiter(client, policy, limit, window)
		default:
			return nil, fmt.Errorf("unknown rate limit backend %q", backend)
		}
	}
	return set, nil
}

// Backend returns the configured backend name
func (s *Set) Backend() string {
	return s.backend
}

// Get returns the limiter of policy, or nil when none is configured
func (s *Set) Get(policy string) Limiter {
	return s.limiters[policy]
}

// Sweep evicts expired in-process state of every limiter
func (s *Set) Sweep(now time.Time) int {
	removed := 0
	for _, l := range s.limiters {
		if sw, ok := l.(Sweeper); ok {
			removed += sw.Sweep(now)
		}
	}
	return removed
}
