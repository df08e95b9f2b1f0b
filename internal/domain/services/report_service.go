package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

const unknownCountry = "No especificado"

// InterfaceReportService defines the reporting service
type InterfaceReportService interface {
	GetReports(ctx context.Context) (*Reports, error)
	Close()
}

type ReportTotals struct {
	TotalDonations int64   `json:"totalDonations"`
	TotalAmount    float64 `json:"totalAmount"`
	AverageAmount  float64 `json:"averageAmount"`
	TotalCountries int64   `json:"totalCountries"`
}

type MonthlyStat struct {
	Month     string  `json:"month"`
	Donations int64   `json:"donations"`
	Amount    float64 `json:"amount"`
}

type CountryStat struct {
	Country   string  `json:"country"`
	Donations int64   `json:"donations"`
	Amount    float64 `json:"amount"`
}

type ReferralStat struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Donations int64   `json:"donations"`
	Amount    float64 `json:"amount"`
}

// Reports is the full admin report
type Reports struct {
	TotalStats      ReportTotals                    `json:"totalStats"`
	StatusBreakdown map[models.DonationStatus]int64 `json:"statusBreakdown"`
	MonthlyStats    []MonthlyStat                   `json:"monthlyStats"`
	CountryStats    []CountryStat                   `json:"countryStats"`
	ReferralStats   []ReferralStat                  `json:"referralStats"`
}

// ReportService computes the admin reports. The aggregates are independent
// and run concurrently on a shared goroutine pool.
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
	pool   *ants.Pool
}

// NewReportService creates a report service with cfg.ReportWorkers workers
func NewReportService(db *gorm.DB, cfg *config.Config) (InterfaceReportService, error) {
	workers := 1
	if cfg != nil && cfg.ReportWorkers > 0 {
		workers = cfg.ReportWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create report pool: %w", err)
	}
	return &ReportService{
		DB:     db,
		Config: cfg,
		pool:   pool,
	}, nil
}

// Close releases the worker pool
func (s *ReportService) Close() {
	s.pool.Release()
}

// 1 GetReports runs every aggregate and fails if any of them fails
func (s *ReportService) GetReports(ctx context.Context) (*Reports, error) {
	db := s.DB.WithContext(ctx)
	reports := &Reports{}

	tasks := []func() error{
		func() (err error) {
			reports.TotalStats, err = s.totals(db)
			return err
		},
		func() (err error) {
			reports.StatusBreakdown, err = statusCounts(db)
			return err
		},
		func() (err error) {
			reports.MonthlyStats, err = s.monthly(db)
			return err
		},
		func() (err error) {
			reports.CountryStats, err = s.countries(db)
			return err
		},
		func() (err error) {
			reports.ReferralStats, err = s.referrals(db)
			return err
		},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, task := range tasks {
		task := task
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			record(task())
		}); err != nil {
			wg.Done()
			logger.Error("failed to submit report task: %v", err)
			record(code.Wrap(code.ErrUnknown, err))
		}
	}
	wg.Wait()

	if firstErr != nil {
		if _, ok := code.As(firstErr); ok {
			return nil, firstErr
		}
		return nil, code.Wrap(code.ErrDatabase, firstErr)
	}
	return reports, nil
}

func (s *ReportService) totals(db *gorm.DB) (ReportTotals, error) {
	var row struct {
		TotalAmount   decimal.Decimal
		DonationCount int64
		CountryCount  int64
	}
	err := confirmedDonations(db).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS donation_count, COUNT(DISTINCT donor_country) AS country_count").
		Scan(&row).Error
	if err != nil {
		return ReportTotals{}, err
	}
	return ReportTotals{
		TotalDonations: row.DonationCount,
		TotalAmount:    money(row.TotalAmount),
		AverageAmount:  money(average(row.TotalAmount, row.DonationCount)),
		TotalCountries: row.CountryCount,
	}, nil
}

func (s *ReportService) monthly(db *gorm.DB) ([]MonthlyStat, error) {
	bucket := database.MonthBucket(db, "created_at")

	var rows []struct {
		Bucket        string
		TotalAmount   decimal.Decimal
		DonationCount int64
	}
	err := confirmedDonations(db).
		Select(bucket + " AS bucket, COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS donation_count").
		Group(bucket).
		Order("bucket DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]MonthlyStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, MonthlyStat{Month: r.Bucket, Donations: r.DonationCount, Amount: money(r.TotalAmount)})
	}
	return stats, nil
}

func (s *ReportService) countries(db *gorm.DB) ([]CountryStat, error) {
	var rows []struct {
		Country       string
		TotalAmount   decimal.Decimal
		DonationCount int64
	}
	err := confirmedDonations(db).
		Select("COALESCE(donor_country, ?) AS country, COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS donation_count", unknownCountry).
		Group("donor_country").
		Order("total_amount DESC, donation_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]CountryStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, CountryStat{Country: r.Country, Donations: r.DonationCount, Amount: money(r.TotalAmount)})
	}
	return stats, nil
}

func (s *ReportService) referrals(db *gorm.DB) ([]ReferralStat, error) {
	var rows []models.Referral
	err := db.Where("is_active = ? AND (total_donations > ? OR total_amount > ?)", true, 0, 0).
		Order("total_amount DESC, total_donations DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]ReferralStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, ReferralStat{Code: r.Code, Name: r.Name, Donations: r.TotalDonations, Amount: money(r.TotalAmount)})
	}
	return stats, nil
}
