package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowLimiter counts requests per key in fixed windows. Counters reset
// lazily on access and are dropped by Sweep once their window has ended.
type FixedWindowLimiter struct {
	limit   int
	period  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	windows map[string]*window
}

// NewFixedWindowLimiter allows limit requests per key every period
func NewFixedWindowLimiter(limit int, period time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

func (l *FixedWindowLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		w = &window{start: now}
		l.windows[key] = w
	}

	if w.count >= l.limit {
		return Decision{
			Allowed:    false,
			Limit:      l.limit,
			RetryAfter: w.start.Add(l.period).Sub(now),
		}, nil
	}

	w.count++
	return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit - w.count}, nil
}

func (l *FixedWindowLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
