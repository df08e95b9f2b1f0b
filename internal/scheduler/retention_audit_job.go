package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

// RetentionAuditJob flags rejected donations older than the retention period.
// It only reports; deletion stays a manual decision.
type RetentionAuditJob struct {
	db     *gorm.DB
	config *config.Config
	now    func() time.Time
}

// NewRetentionAuditJob creates the retention audit job
func NewRetentionAuditJob(db *gorm.DB, cfg *config.Config) *RetentionAuditJob {
	return &RetentionAuditJob{
		db:     db,
		config: cfg,
		now:    time.Now,
	}
}

func (j *RetentionAuditJob) GetName() string {
	return "data_retention_audit"
}

// GetSchedule runs daily at 03:00
func (j *RetentionAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)))
}

func (j *RetentionAuditJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := j.Run(ctx); err != nil {
		logger.Error("data retention audit failed: %v", err)
	}
}

// Run counts rejected donations created before the retention cutoff and
// records an audit entry when there are any
func (j *RetentionAuditJob) Run(ctx context.Context) (int64, error) {
	years := j.config.DataRetentionYears
	if years <= 0 {
		years = 7
	}
	cutoff := j.now().UTC().AddDate(-years, 0, 0)

	var count int64
	err := j.db.WithContext(ctx).Model(&models.Donation{}).
		Where("status = ? AND created_at < ?", models.DonationStatusRejected, cutoff).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count expired donations: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	logger.L().Warn("rejected donations past retention period",
		zap.Int64("count", count),
		zap.Time("cutoff", cutoff),
		zap.Int("retention_years", years),
	)

	entry := models.AuditLog{
		Action:     models.AuditRetentionCandidate,
		ResourceID: "donations",
		Details:    fmt.Sprintf("%d rejected donations created before %s", count, cutoff.Format("2006-01-02")),
	}
	if err := j.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return count, fmt.Errorf("write audit entry: %w", err)
	}
	return count, nil
}
