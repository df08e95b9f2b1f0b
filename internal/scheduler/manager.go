package scheduler

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/ratelimit"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

// Job is a periodic background task
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager owns the gocron scheduler and its jobs
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	limiters  *ratelimit.Set
	config    *config.Config
}

// NewManager creates a scheduler manager
func NewManager(db *gorm.DB, limiters *ratelimit.Set, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		limiters:  limiters,
		config:    cfg,
	}, nil
}

// Start registers every job and starts the scheduler
func Start(db *gorm.DB, limiters *ratelimit.Set, cfg *config.Config) (*Manager, error) {
	manager, err := NewManager(db, limiters, cfg)
	if err != nil {
		return nil, err
	}
	if err := manager.RegisterJobs(); err != nil {
		_ = manager.scheduler.Shutdown()
		return nil, err
	}

	manager.scheduler.Start()
	logger.Info("scheduler started with %d jobs", len(manager.scheduler.Jobs()))
	return manager, nil
}

// RegisterJobs registers every background job
func (m *Manager) RegisterJobs() error {
	jobs := []Job{
		NewRetentionAuditJob(m.db, m.config),
	}
	// redis keys expire on their own, only in-process limiters need sweeping
	if m.limiters != nil && m.limiters.Backend() != ratelimit.BackendRedis {
		jobs = append(jobs, NewLimiterSweepJob(m.limiters, m.config.LimiterSweepInterval))
	}

	for _, job := range jobs {
		if err := m.register(job); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) register(job Job) error {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.GetName(), err)
	}
	return nil
}

// Stop shuts the scheduler down, waiting for running jobs
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("scheduler shutdown: %v", err)
		return
	}
	logger.Info("scheduler stopped")
}
