package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/ratelimit"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

// LimiterSweepJob drops expired rate limit windows and idle buckets
type LimiterSweepJob struct {
	limiters *ratelimit.Set
	interval time.Duration
	now      func() time.Time
}

// NewLimiterSweepJob creates the sweep job
func NewLimiterSweepJob(limiters *ratelimit.Set, interval time.Duration) *LimiterSweepJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &LimiterSweepJob{
		limiters: limiters,
		interval: interval,
		now:      time.Now,
	}
}

func (j *LimiterSweepJob) GetName() string {
	return "rate_limiter_sweep"
}

func (j *LimiterSweepJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *LimiterSweepJob) Execute() {
	j.Sweep()
}

// Sweep runs one pass and returns the number of evicted keys
func (j *LimiterSweepJob) Sweep() int {
	removed := j.limiters.Sweep(j.now())
	if removed > 0 {
		logger.Debug("rate limiter sweep removed %d keys", removed)
	}
	return removed
}
