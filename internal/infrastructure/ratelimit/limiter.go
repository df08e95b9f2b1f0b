// Package ratelimit provides per-key request limiters used by the HTTP layer.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a single Allow call
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when allowed
}

// Limiter decides whether a request identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Sweeper is implemented by in-process limiters that keep per-key state
type Sweeper interface {
	// Sweep drops expired entries and returns how many were removed
	Sweep(now time.Time) int
}

// RetryAfterSeconds rounds d up to whole seconds, minimum one
func RetryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
