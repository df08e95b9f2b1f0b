package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
	"github.com/malamapl09/donaciones-pola-allande/pkg/utils"
)

const (
	donationCreatedMessage = "Donación registrada exitosamente. Procede con la transferencia bancaria."
	recentDonationsLimit   = 10
	topCountriesLimit      = 5
)

var (
	minDonationAmount = decimal.RequireFromString("0.01")
	maxDonationAmount = decimal.NewFromInt(100000)
)

// InterfaceDonationService defines the public donation service
type InterfaceDonationService interface {
	CreateDonation(ctx context.Context, input CreateDonationInput) (*CreateDonationResult, error)
	GetStats(ctx context.Context) (*DonationStats, error)
	GetByReference(ctx context.Context, referenceNumber string) (*PublicDonation, error)
}

// CreateDonationInput is a donation pledge as submitted by the donor
type CreateDonationInput struct {
	DonorName    *string
	DonorEmail   *string
	DonorPhone   *string
	DonorCountry *string
	Amount       decimal.Decimal
	IsAnonymous  bool
	Message      *string
	ReferralCode string
	UTMSource    *string
	UTMMedium    *string
	UTMCampaign  *string
}

// CreatedDonation is the part of a new donation echoed back to the donor
type CreatedDonation struct {
	ID              uint                  `json:"id"`
	ReferenceNumber string                `json:"referenceNumber"`
	Amount          float64               `json:"amount"`
	Status          models.DonationStatus `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
}

type CreateDonationResult struct {
	Donation         CreatedDonation `json:"donation"`
	BankTransferInfo string          `json:"bankTransferInfo"`
	Message          string          `json:"message"`
}

// CountryTotal aggregates confirmed donations of one country
type CountryTotal struct {
	Country string  `json:"country"`
	Count   int64   `json:"count"`
	Amount  float64 `json:"amount"`
}

// DonationStats is the public fundraising summary
type DonationStats struct {
	TotalAmount     float64           `json:"totalAmount"`
	TotalDonations  int64             `json:"totalDonations"`
	AverageDonation float64           `json:"averageDonation"`
	GoalProgress    float64           `json:"goalProgress"`
	TopCountries    []CountryTotal    `json:"topCountries"`
	RecentDonations []DonationSummary `json:"recentDonations"`
}

// DonationService records pledges and serves public donation data
type DonationService struct {
	DB      *gorm.DB
	Config  *config.Config
	Content InterfaceContentService
}

// NewDonationService creates a new donation service
func NewDonationService(db *gorm.DB, cfg *config.Config, content InterfaceContentService) InterfaceDonationService {
	return &DonationService{
		DB:      db,
		Config:  cfg,
		Content: content,
	}
}

// ValidateAmount accepts 0.01 to 100000 with at most two decimal places
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() ||
		amount.LessThan(minDonationAmount) ||
		amount.GreaterThan(maxDonationAmount) ||
		!amount.Equal(amount.Round(2)) {
		return code.New(code.ErrDonationAmountInvalid)
	}
	return nil
}

// 1 CreateDonation stores a pending donation and returns transfer instructions
func (s *DonationService) CreateDonation(ctx context.Context, input CreateDonationInput) (*CreateDonationResult, error) {
	if err := ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	donation := models.Donation{
		ReferenceNumber: utils.GenerateReferenceNumber(time.Now()),
		DonorCountry:    optional(input.DonorCountry),
		Amount:          input.Amount.Round(2),
		Currency:        models.DefaultCurrency,
		IsAnonymous:     input.IsAnonymous,
		Message:         optional(input.Message),
		UTMSource:       optional(input.UTMSource),
		UTMMedium:       optional(input.UTMMedium),
		UTMCampaign:     optional(input.UTMCampaign),
		Status:          models.DonationStatusPending,
	}
	if !input.IsAnonymous {
		donation.DonorName = optional(input.DonorName)
		donation.DonorEmail = optional(input.DonorEmail)
		donation.DonorPhone = optional(input.DonorPhone)
	}

	referralID, err := s.resolveReferral(ctx, input.ReferralCode)
	if err != nil {
		return nil, err
	}
	donation.ReferralID = referralID

	if err := s.DB.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	bankInfo, err := s.Content.BankTransferInfo(ctx, donation.ReferenceNumber)
	if err != nil {
		logger.Warning("bank_info lookup failed, using fallback: %v", err)
	}

	logger.L().Info("donation created",
		zap.Uint("donation_id", donation.ID),
		zap.String("reference_number", donation.ReferenceNumber),
		zap.String("amount", donation.Amount.StringFixed(2)),
		zap.Bool("anonymous", donation.IsAnonymous),
		zap.Bool("referred", donation.ReferralID != nil),
	)

	return &CreateDonationResult{
		Donation: CreatedDonation{
			ID:              donation.ID,
			ReferenceNumber: donation.ReferenceNumber,
			Amount:          money(donation.Amount),
			Status:          donation.Status,
			CreatedAt:       donation.CreatedAt,
		},
		BankTransferInfo: bankInfo,
		Message:          donationCreatedMessage,
	}, nil
}

// resolveReferral maps a code to an active referral id. Unknown or inactive
// codes are not an error; the donation is simply unattributed.
func (s *DonationService) resolveReferral(ctx context.Context, referralCode string) (*uint, error) {
	referralCode = strings.ToUpper(strings.TrimSpace(referralCode))
	if referralCode == "" {
		return nil, nil
	}

	var referral models.Referral
	err := s.DB.WithContext(ctx).
		Select("id").
		Where("code = ? AND is_active = ?", referralCode, true).
		First(&referral).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}
	return &referral.ID, nil
}

type amountTotals struct {
	TotalAmount   decimal.Decimal
	DonationCount int64
}

func confirmedDonations(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Donation{}).Where("status = ?", models.DonationStatusConfirmed)
}

// 2 GetStats summarizes confirmed donations
func (s *DonationService) GetStats(ctx context.Context) (*DonationStats, error) {
	db := s.DB.WithContext(ctx)

	var totals amountTotals
	if err := confirmedDonations(db).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS donation_count").
		Scan(&totals).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	var countries []struct {
		Country       string
		TotalAmount   decimal.Decimal
		DonationCount int64
	}
	if err := confirmedDonations(db).
		Select("donor_country AS country, SUM(amount) AS total_amount, COUNT(*) AS donation_count").
		Where("donor_country IS NOT NULL").
		Group("donor_country").
		Order("total_amount DESC").
		Limit(topCountriesLimit).
		Scan(&countries).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	var recent []models.Donation
	if err := confirmedDonations(db).
		Order("created_at DESC, id DESC").
		Limit(recentDonationsLimit).
		Find(&recent).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	goal, err := s.Content.GetActiveGoal(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DonationStats{
		TotalAmount:     money(totals.TotalAmount),
		TotalDonations:  totals.DonationCount,
		AverageDonation: money(average(totals.TotalAmount, totals.DonationCount)),
		GoalProgress:    goal.Progress,
		TopCountries:    make([]CountryTotal, 0, len(countries)),
		RecentDonations: presentSummaries(recent),
	}
	for _, c := range countries {
		stats.TopCountries = append(stats.TopCountries, CountryTotal{
			Country: c.Country,
			Count:   c.DonationCount,
			Amount:  money(c.TotalAmount),
		})
	}
	return stats, nil
}

// 3 GetByReference returns the public view of one donation
func (s *DonationService) GetByReference(ctx context.Context, referenceNumber string) (*PublicDonation, error) {
	var donation models.Donation
	if err := s.DB.WithContext(ctx).
		Where("reference_number = ?", strings.TrimSpace(referenceNumber)).
		First(&donation).Error; err != nil {
		return nil, dbError(err, code.ErrDonationNotFound)
	}
	view := PresentPublicDonation(&donation)
	return &view, nil
}

// average divides total by count, returning zero for an empty set
func average(total decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(count))
}
