package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

const (
	dashboardRecentLimit    = 10
	dashboardReferralsLimit = 5
)

var statusUpdateMessages = map[models.DonationStatus]string{
	models.DonationStatusConfirmed: "Donación confirmada exitosamente",
	models.DonationStatusRejected:  "Donación rechazada exitosamente",
}

// InterfaceAdminService defines the donation review service
type InterfaceAdminService interface {
	ListDonations(ctx context.Context, query models.PaginationQuery, status string) (*DonationPage, error)
	SetDonationStatus(ctx context.Context, id uint, status models.DonationStatus, actor Actor) (*StatusUpdateResult, error)
	GetDashboard(ctx context.Context) (*Dashboard, error)
	GetActiveAdmin(ctx context.Context, id uint) (*models.AdminUser, error)
}

// DonationPage is one page of the admin donation list
type DonationPage struct {
	Donations  []AdminDonation         `json:"donations"`
	Pagination models.PaginationResult `json:"pagination"`
}

type StatusUpdateResult struct {
	Message  string        `json:"message"`
	Donation AdminDonation `json:"donation"`
}

type DashboardStats struct {
	PendingDonations     int64   `json:"pendingDonations"`
	ConfirmedDonations   int64   `json:"confirmedDonations"`
	RejectedDonations    int64   `json:"rejectedDonations"`
	TotalConfirmedAmount float64 `json:"totalConfirmedAmount"`
	UniqueCountries      int64   `json:"uniqueCountries"`
}

// Dashboard is the admin landing page summary
type Dashboard struct {
	Stats           DashboardStats         `json:"stats"`
	RecentDonations []AdminDonationSummary `json:"recentDonations"`
	TopReferrals    []LeaderboardEntry     `json:"topReferrals"`
}

// AdminService provides donation review operations
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 ListDonations pages through donations, newest first, optionally by status
func (s *AdminService) ListDonations(ctx context.Context, query models.PaginationQuery, status string) (*DonationPage, error) {
	query = query.Normalize()

	db := s.DB.WithContext(ctx).Model(&models.Donation{})
	if status != "" {
		if !models.DonationStatus(status).Valid() {
			return nil, code.New(code.ErrDonationStatusFilterInvalid)
		}
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	var rows []models.Donation
	if err := db.Preload("Referral").
		Order("created_at DESC, id DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&rows).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	page := &DonationPage{
		Donations:  make([]AdminDonation, 0, len(rows)),
		Pagination: models.NewPaginationResult(query, total),
	}
	for i := range rows {
		page.Donations = append(page.Donations, PresentAdminDonation(&rows[i]))
	}
	return page, nil
}

// 2 SetDonationStatus confirms or rejects a donation. Confirming a referred
// donation adds it to the referral counters. Repeating a confirmation repeats
// the increment, and rejecting a confirmed donation does not reverse it.
func (s *AdminService) SetDonationStatus(ctx context.Context, id uint, status models.DonationStatus, actor Actor) (*StatusUpdateResult, error) {
	if status != models.DonationStatusConfirmed && status != models.DonationStatusRejected {
		return nil, code.New(code.ErrDonationStatusInvalid)
	}

	var donation models.Donation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&donation, id).Error; err != nil {
			return dbError(err, code.ErrDonationNotFound)
		}

		updates := map[string]interface{}{
			"status":       status,
			"confirmed_by": actor.Username,
		}
		if status == models.DonationStatusConfirmed {
			updates["confirmed_at"] = time.Now().UTC()
		}
		if err := tx.Model(&donation).Updates(updates).Error; err != nil {
			return err
		}

		if status == models.DonationStatusConfirmed && donation.ReferralID != nil {
			if err := tx.Model(&models.Referral{}).
				Where("id = ?", *donation.ReferralID).
				Updates(map[string]interface{}{
					"total_donations": gorm.Expr("total_donations + ?", 1),
					"total_amount":    gorm.Expr("total_amount + ?", donation.Amount),
				}).Error; err != nil {
				return err
			}
		}

		return writeAudit(tx, models.AuditDonationStatus, actor, uintString(donation.ID), "status="+string(status))
	})
	if err != nil {
		if _, ok := code.As(err); ok {
			return nil, err
		}
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	if err := s.DB.WithContext(ctx).Preload("Referral").First(&donation, id).Error; err != nil {
		return nil, dbError(err, code.ErrDonationNotFound)
	}

	logger.L().Info("donation status changed",
		zap.Uint("donation_id", donation.ID),
		zap.String("status", string(status)),
		zap.String("admin", actor.Username),
	)

	return &StatusUpdateResult{
		Message:  statusUpdateMessages[status],
		Donation: PresentAdminDonation(&donation),
	}, nil
}

// 3 GetDashboard summarizes review state for the admin landing page
func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	db := s.DB.WithContext(ctx)

	counts, err := statusCounts(db)
	if err != nil {
		return nil, err
	}

	var totals amountTotals
	if err := confirmedDonations(db).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS donation_count").
		Scan(&totals).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	var countries int64
	if err := confirmedDonations(db).
		Where("donor_country IS NOT NULL").
		Distinct("donor_country").
		Count(&countries).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	var recent []models.Donation
	if err := db.Order("created_at DESC, id DESC").
		Limit(dashboardRecentLimit).
		Find(&recent).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	var referrals []models.Referral
	if err := db.Where("is_active = ?", true).
		Order("total_amount DESC, total_donations DESC, id ASC").
		Limit(dashboardReferralsLimit).
		Find(&referrals).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	dashboard := &Dashboard{
		Stats: DashboardStats{
			PendingDonations:     counts[models.DonationStatusPending],
			ConfirmedDonations:   counts[models.DonationStatusConfirmed],
			RejectedDonations:    counts[models.DonationStatusRejected],
			TotalConfirmedAmount: money(totals.TotalAmount),
			UniqueCountries:      countries,
		},
		RecentDonations: make([]AdminDonationSummary, 0, len(recent)),
		TopReferrals:    make([]LeaderboardEntry, 0, len(referrals)),
	}
	for i := range recent {
		dashboard.RecentDonations = append(dashboard.RecentDonations, PresentAdminDonationSummary(&recent[i]))
	}
	for _, r := range referrals {
		dashboard.TopReferrals = append(dashboard.TopReferrals, LeaderboardEntry{
			Code:           r.Code,
			Name:           r.Name,
			TotalDonations: r.TotalDonations,
			TotalAmount:    money(r.TotalAmount),
			CreatedAt:      r.CreatedAt,
		})
	}
	return dashboard, nil
}

// 4 GetActiveAdmin loads the admin behind a token
func (s *AdminService) GetActiveAdmin(ctx context.Context, id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.DB.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, dbError(err, code.ErrTokenInvalid)
	}
	if !admin.IsActive {
		return nil, code.New(code.ErrAdminInactive)
	}
	return &admin, nil
}

// statusCounts counts donations per status, zero-filled for every known status
func statusCounts(db *gorm.DB) (map[models.DonationStatus]int64, error) {
	var rows []struct {
		Status        models.DonationStatus
		DonationCount int64
	}
	if err := db.Model(&models.Donation{}).
		Select("status, COUNT(*) AS donation_count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	counts := make(map[models.DonationStatus]int64, len(models.DonationStatuses))
	for _, status := range models.DonationStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.DonationCount
	}
	return counts, nil
}
