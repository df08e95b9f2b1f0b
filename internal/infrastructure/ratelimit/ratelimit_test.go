package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFixedWindowLimiter(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	l := NewFixedWindowLimiter(5, 15*time.Minute)
	l.now = clock.now

	for i := 0; i < 5; i++ {
		d, _ := l.Allow(ctx, "1.2.3.4")
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if d.Remaining != 4-i {
			t.Errorf("remaining = %d, want %d", d.Remaining, 4-i)
		}
	}

	clock.advance(5 * time.Minute)
	d, _ := l.Allow(ctx, "1.2.3.4")
	if d.Allowed {
		t.Fatal("sixth request in the window must be rejected")
	}
	if d.RetryAfter != 10*time.Minute {
		t.Errorf("retry after = %v, want 10m", d.RetryAfter)
	}

	if d, _ := l.Allow(ctx, "5.6.7.8"); !d.Allowed {
		t.Error("other keys are counted separately")
	}

	clock.advance(10 * time.Minute)
	if d, _ := l.Allow(ctx, "1.2.3.4"); !d.Allowed {
		t.Error("window should reset after the period")
	}
}

func TestFixedWindowSweep(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	l := NewFixedWindowLimiter(1, time.Minute)
	l.now = clock.now

	l.Allow(ctx, "a")
	clock.advance(30 * time.Second)
	l.Allow(ctx, "b")

	if removed := l.Sweep(clock.t.Add(40 * time.Second)); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if l.Len() != 1 {
		t.Errorf("len = %d, want 1", l.Len())
	}
}

func TestTokenBucketLimiter(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	l := NewTokenBucketLimiter(3, 3*time.Second) // one token per second
	l.now = clock.now

	for i := 0; i < 3; i++ {
		if d, _ := l.Allow(ctx, "k"); !d.Allowed {
			t.Fatalf("burst request %d rejected", i+1)
		}
	}
	d, _ := l.Allow(ctx, "k")
	if d.Allowed {
		t.Fatal("bucket should be empty")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Second {
		t.Errorf("retry after = %v, want (0,1s]", d.RetryAfter)
	}

	clock.advance(time.Second)
	if d, _ := l.Allow(ctx, "k"); !d.Allowed {
		t.Error("one token should have been refilled")
	}

	if removed := l.Sweep(clock.t.Add(3 * time.Second)); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	l := NewRedisLimiter(client, "login", 2, time.Minute)

	for i := 0; i < 2; i++ {
		d, err := l.Allow(ctx, "9.9.9.9")
		if err != nil || !d.Allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i+1, d.Allowed, err)
		}
	}

	d, err := l.Allow(ctx, "9.9.9.9")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if d.Allowed {
		t.Fatal("third request must be rejected")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("retry after = %v", d.RetryAfter)
	}
	if !mr.Exists("ratelimit:login:9.9.9.9") {
		t.Error("counter key missing")
	}

	mr.FastForward(time.Minute + time.Second)
	if d, _ := l.Allow(ctx, "9.9.9.9"); !d.Allowed {
		t.Error("counter should expire with its window")
	}
}

func TestRedisLimiterUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	if _, err := NewRedisLimiter(client, "general", 1, time.Minute).Allow(context.Background(), "k"); err == nil {
		t.Error("expected an error when redis is down")
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	cases := map[time.Duration]int{
		0:                       1,
		300 * time.Millisecond:  1,
		time.Second:             1,
		1500 * time.Millisecond: 2,
		15 * time.Minute:        900,
	}
	for in, want := range cases {
		if got := RetryAfterSeconds(in); got != want {
			t.Errorf("RetryAfterSeconds(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestNewSet(t *testing.T) {
	limits := map[string]int{PolicyDonation: 1, PolicyGeneral: 100}

	memory, err := NewSet(BackendMemory, nil, time.Minute, limits)
	if err != nil {
		t.Fatalf("memory set: %v", err)
	}
	if _, ok := memory.Get(PolicyDonation).(*FixedWindowLimiter); !ok {
		t.Errorf("memory backend built %T", memory.Get(PolicyDonation))
	}
	if memory.Get(PolicyLogin) != nil {
		t.Error("unconfigured policy should be nil")
	}

	buckets, err := NewSet(BackendTokenBucket, nil, time.Minute, limits)
	if err != nil {
		t.Fatalf("token bucket set: %v", err)
	}
	if _, ok := buckets.Get(PolicyGeneral).(*TokenBucketLimiter); !ok {
		t.Errorf("token_bucket backend built %T", buckets.Get(PolicyGeneral))
	}

	if _, err := NewSet(BackendRedis, nil, time.Minute, limits); err == nil {
		t.Error("redis backend without client should fail")
	}
	if _, err := NewSet("etcd", nil, time.Minute, limits); err == nil {
		t.Error("unknown backend should fail")
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	set, err := NewSet(BackendRedis, client, time.Minute, limits)
	if err != nil {
		t.Fatalf("redis set: %v", err)
	}
	if _, ok := set.Get(PolicyGeneral).(*RedisLimiter); !ok {
		t.Errorf("unexpected limiter %T", set.Get(PolicyGeneral))
	}
	if removed := set.Sweep(time.Now()); removed != 0 {
		t.Errorf("redis limiters keep no local state, swept %d", removed)
	}
}

func TestSetSweep(t *testing.T) {
	set, err := NewSet(BackendMemory, nil, time.Minute, map[string]int{PolicyLogin: 5})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	ctx := context.Background()
	for _, ip := range []string{"1.1.1.1", "2.2.2.2"} {
		if _, err := set.Get(PolicyLogin).Allow(ctx, ip); err != nil {
			t.Fatalf("Allow: %v", err)
		}
	}
	if removed := set.Sweep(time.Now().Add(2 * time.Minute)); removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
}
