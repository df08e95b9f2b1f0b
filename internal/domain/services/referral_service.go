package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
	"github.com/malamapl09/donaciones-pola-allande/pkg/utils"
)

const (
	referralCreatedMessage = "Enlace de referencia creado exitosamente"
	minReferralNameLength  = 2
	referralDonationsLimit = 10
	leaderboardLimit       = 20
)

// InterfaceReferralService defines the referral service
type InterfaceReferralService interface {
	CreateReferral(ctx context.Context, input CreateReferralInput) (*CreatedReferral, error)
	GetByCode(ctx context.Context, referralCode, origin string) (*ReferralDetail, error)
	ListLeaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

// CreateReferralInput carries a sponsor's details. Origin is the request
// origin, used for the share link when no public base URL is configured.
type CreateReferralInput struct {
	Name   string
	Email  *string
	Phone  *string
	Origin string
}

type CreatedReferral struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	ShareURL  string    `json:"shareUrl"`
	Message   string    `json:"message"`
}

// ReferralDetail is the public page of a referral. Contact details are omitted.
type ReferralDetail struct {
	ID              uint              `json:"id"`
	Code            string            `json:"code"`
	Name            string            `json:"name"`
	TotalDonations  int64             `json:"totalDonations"`
	TotalAmount     float64           `json:"totalAmount"`
	CreatedAt       time.Time         `json:"createdAt"`
	ShareURL        string            `json:"shareUrl"`
	RecentDonations []DonationSummary `json:"recentDonations"`
}

type LeaderboardEntry struct {
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	TotalDonations int64     `json:"totalDonations"`
	TotalAmount    float64   `json:"totalAmount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ReferralService manages referral codes
type ReferralService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewReferralService creates a new referral service
func NewReferralService(db *gorm.DB, cfg *config.Config) InterfaceReferralService {
	return &ReferralService{
		DB:     db,
		Config: cfg,
	}
}

// shareURL builds the link a sponsor hands out
func (s *ReferralService) shareURL(origin, referralCode string) string {
	base := origin
	if s.Config != nil && s.Config.PublicBaseURL != "" {
		base = s.Config.PublicBaseURL
	}
	return strings.TrimRight(base, "/") + "?ref=" + referralCode
}

// 1 CreateReferral issues a new code derived from the sponsor name.
// A collision is reported to the caller, never retried.
func (s *ReferralService) CreateReferral(ctx context.Context, input CreateReferralInput) (*CreatedReferral, error) {
	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) < minReferralNameLength {
		return nil, code.New(code.ErrReferralNameInvalid)
	}

	referral := models.Referral{
		Code:     utils.GenerateReferralCode(name),
		Name:     name,
		Email:    optional(input.Email),
		Phone:    optional(input.Phone),
		IsActive: true,
	}
	if err := s.DB.WithContext(ctx).Create(&referral).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, code.Wrap(code.ErrReferralCodeExists, err)
		}
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	logger.Info("referral created: id=%d code=%s", referral.ID, referral.Code)

	return &CreatedReferral{
		ID:        referral.ID,
		Code:      referral.Code,
		Name:      referral.Name,
		CreatedAt: referral.CreatedAt,
		ShareURL:  s.shareURL(input.Origin, referral.Code),
		Message:   referralCreatedMessage,
	}, nil
}

// 2 GetByCode returns an active referral and its latest donations
func (s *ReferralService) GetByCode(ctx context.Context, referralCode, origin string) (*ReferralDetail, error) {
	db := s.DB.WithContext(ctx)

	var referral models.Referral
	if err := db.
		Where("code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(referralCode)), true).
		First(&referral).Error; err != nil {
		return nil, dbError(err, code.ErrReferralNotFound)
	}

	var donations []models.Donation
	if err := db.
		Where("referral_id = ? AND status IN ?", referral.ID,
			[]models.DonationStatus{models.DonationStatusConfirmed, models.DonationStatusPending}).
		Order("created_at DESC, id DESC").
		Limit(referralDonationsLimit).
		Find(&donations).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	return &ReferralDetail{
		ID:              referral.ID,
		Code:            referral.Code,
		Name:            referral.Name,
		TotalDonations:  referral.TotalDonations,
		TotalAmount:     money(referral.TotalAmount),
		CreatedAt:       referral.CreatedAt,
		ShareURL:        s.shareURL(origin, referral.Code),
		RecentDonations: presentSummaries(donations),
	}, nil
}

// 3 ListLeaderboard ranks active referrals with at least one confirmed donation
func (s *ReferralService) ListLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var referrals []models.Referral
	if err := s.DB.WithContext(ctx).
		Where("is_active = ? AND total_donations > ?", true, 0).
		Order("total_amount DESC, total_donations DESC, id ASC").
		Limit(leaderboardLimit).
		Find(&referrals).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	entries := make([]LeaderboardEntry, 0, len(referrals))
	for _, r := range referrals {
		entries = append(entries, LeaderboardEntry{
			Code:           r.Code,
			Name:           r.Name,
			TotalDonations: r.TotalDonations,
			TotalAmount:    money(r.TotalAmount),
			CreatedAt:      r.CreatedAt,
		})
	}
	return entries, nil
}
