package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/test/testdb"
	"github.com/malamapl09/donaciones-pola-allande/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:       "test-secret",
		JWTExpiry:          time.Hour,
		ReportWorkers:      2,
		DataRetentionYears: 7,
	}
}

func str(s string) *string { return &s }

func dec(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func assertCode(t testing.TB, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code %d, got nil", want)
	}
	if got := code.CodeOf(err); got != want {
		t.Fatalf("error code = %d, want %d (%v)", got, want, err)
	}
}

type donationSeed struct {
	Name      string
	Email     string
	Country   string
	Amount    string
	Anonymous bool
	Status    models.DonationStatus
	Referral  *models.Referral
	CreatedAt time.Time
	Message   string
}

func seedDonation(t testing.TB, db *gorm.DB, seed donationSeed) *models.Donation {
	t.Helper()

	d := &models.Donation{
		ReferenceNumber: utils.GenerateReferenceNumber(time.Now()),
		Amount:          dec(t, seed.Amount),
		Currency:        models.DefaultCurrency,
		IsAnonymous:     seed.Anonymous,
		Status:          seed.Status,
	}
	if d.Status == "" {
		d.Status = models.DonationStatusPending
	}
	if seed.Name != "" {
		d.DonorName = str(seed.Name)
	}
	if seed.Email != "" {
		d.DonorEmail = str(seed.Email)
	}
	if seed.Country != "" {
		d.DonorCountry = str(seed.Country)
	}
	if seed.Message != "" {
		d.Message = str(seed.Message)
	}
	if seed.Referral != nil {
		d.ReferralID = &seed.Referral.ID
	}
	if !seed.CreatedAt.IsZero() {
		d.CreatedAt = seed.CreatedAt
	}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return d
}

func seedReferral(t testing.TB, db *gorm.DB, codeValue, name string, active bool) *models.Referral {
	t.Helper()
	r := &models.Referral{Code: codeValue, Name: name, IsActive: active, TotalAmount: decimal.Zero}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed referral: %v", err)
	}
	return r
}

func reloadReferral(t testing.TB, db *gorm.DB, id uint) models.Referral {
	t.Helper()
	var r models.Referral
	if err := db.First(&r, id).Error; err != nil {
		t.Fatalf("reload referral: %v", err)
	}
	return r
}

func reloadDonation(t testing.TB, db *gorm.DB, id uint) models.Donation {
	t.Helper()
	var d models.Donation
	if err := db.First(&d, id).Error; err != nil {
		t.Fatalf("reload donation: %v", err)
	}
	return d
}

func countAudit(t testing.TB, db *gorm.DB, action models.AuditAction) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.AuditLog{}).Where("action = ?", action).Count(&n).Error; err != nil {
		t.Fatalf("count audit: %v", err)
	}
	return n
}

// failOnTable makes every update touching table fail
func failOnTable(t testing.TB, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errors.New("forced failure on " + table))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	return testdb.New(t)
}
