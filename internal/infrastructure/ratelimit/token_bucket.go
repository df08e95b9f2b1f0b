package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// TokenBucket refills continuously at rate tokens per second up to capacity
type TokenBucket struct {
	rate       float64
	capacity   int
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(rate float64, capacity int, now time.Time) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: now,
	}
}

// take refills the bucket and consumes one token if available
func (tb *TokenBucket) take(now time.Time) (bool, time.Duration) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true, 0
	}

	missing := 1 - tb.tokens
	return false, time.Duration(math.Ceil(missing / tb.rate * float64(time.Second)))
}

// TokenBucketLimiter keeps one bucket per key. A bucket holds limit tokens
// and refills limit tokens per period, so bursts are smoothed instead of
// reset at window boundaries.
type TokenBucketLimiter struct {
	limit   int
	period  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

// NewTokenBucketLimiter allows bursts of limit and sustained limit per period
func NewTokenBucketLimiter(limit int, period time.Duration) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		buckets: make(map[string]*TokenBucket),
	}
}

func (l *TokenBucketLimiter) rate() float64 {
	return float64(l.limit) / l.period.Seconds()
}

func (l *TokenBucketLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = newTokenBucket(l.rate(), l.limit, now)
		l.buckets[key] = bucket
	}

	allowed, wait := bucket.take(now)
	return Decision{
		Allowed:    allowed,
		Limit:      l.limit,
		Remaining:  int(bucket.tokens),
		RetryAfter: wait,
	}, nil
}

// Sweep drops buckets that have been idle long enough to be full again
func (l *TokenBucketLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) >= l.period {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}
