package services

import (
	"time"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
)

// Every donation leaving the service goes through one of the Present*
// functions below; they share donorIdentity so anonymous donors are never
// exposed, whatever the stored row contains.

type identity struct {
	name  *string
	email *string
	phone *string
}

func donorIdentity(d *models.Donation) identity {
	if d.IsAnonymous {
		return identity{}
	}
	return identity{name: d.DonorName, email: d.DonorEmail, phone: d.DonorPhone}
}

// PublicDonation is the lookup view of a single donation
type PublicDonation struct {
	ID              uint                  `json:"id"`
	ReferenceNumber string                `json:"referenceNumber"`
	Amount          float64               `json:"amount"`
	Currency        string                `json:"currency"`
	Status          models.DonationStatus `json:"status"`
	DonorName       *string               `json:"donorName"`
	IsAnonymous     bool                  `json:"isAnonymous"`
	Message         *string               `json:"message"`
	CreatedAt       time.Time             `json:"createdAt"`
	ConfirmedAt     *time.Time            `json:"confirmedAt"`
}

// DonationSummary is a list entry for public feeds
type DonationSummary struct {
	Amount      float64               `json:"amount"`
	DonorName   *string               `json:"donorName"`
	IsAnonymous bool                  `json:"isAnonymous"`
	Status      models.DonationStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// AdminDonation is the review view, including contact details of named donors
type AdminDonation struct {
	ID              uint                  `json:"id"`
	ReferenceNumber string                `json:"referenceNumber"`
	DonorName       *string               `json:"donorName"`
	DonorEmail      *string               `json:"donorEmail"`
	DonorPhone      *string               `json:"donorPhone"`
	DonorCountry    *string               `json:"donorCountry"`
	Amount          float64               `json:"amount"`
	Currency        string                `json:"currency"`
	Status          models.DonationStatus `json:"status"`
	IsAnonymous     bool                  `json:"isAnonymous"`
	Message         *string               `json:"message"`
	UTMSource       *string               `json:"utmSource"`
	UTMMedium       *string               `json:"utmMedium"`
	UTMCampaign     *string               `json:"utmCampaign"`
	CreatedAt       time.Time             `json:"createdAt"`
	ConfirmedAt     *time.Time            `json:"confirmedAt"`
	ConfirmedBy     *string               `json:"confirmedBy"`
	ReferralCode    *string               `json:"referralCode"`
	ReferralName    *string               `json:"referralName"`
}

// AdminDonationSummary is a dashboard list entry
type AdminDonationSummary struct {
	ReferenceNumber string                `json:"referenceNumber"`
	DonorName       *string               `json:"donorName"`
	IsAnonymous     bool                  `json:"isAnonymous"`
	Amount          float64               `json:"amount"`
	Status          models.DonationStatus `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
}

func PresentPublicDonation(d *models.Donation) PublicDonation {
	id := donorIdentity(d)
	return PublicDonation{
		ID:              d.ID,
		ReferenceNumber: d.ReferenceNumber,
		Amount:          money(d.Amount),
		Currency:        d.Currency,
		Status:          d.Status,
		DonorName:       id.name,
		IsAnonymous:     d.IsAnonymous,
		Message:         d.Message,
		CreatedAt:       d.CreatedAt,
		ConfirmedAt:     d.ConfirmedAt,
	}
}

func PresentDonationSummary(d *models.Donation) DonationSummary {
	return DonationSummary{
		Amount:      money(d.Amount),
		DonorName:   donorIdentity(d).name,
		IsAnonymous: d.IsAnonymous,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}

func PresentAdminDonation(d *models.Donation) AdminDonation {
	id := donorIdentity(d)
	out := AdminDonation{
		ID:              d.ID,
		ReferenceNumber: d.ReferenceNumber,
		DonorName:       id.name,
		DonorEmail:      id.email,
		DonorPhone:      id.phone,
		DonorCountry:    d.DonorCountry,
		Amount:          money(d.Amount),
		Currency:        d.Currency,
		Status:          d.Status,
		IsAnonymous:     d.IsAnonymous,
		Message:         d.Message,
		UTMSource:       d.UTMSource,
		UTMMedium:       d.UTMMedium,
		UTMCampaign:     d.UTMCampaign,
		CreatedAt:       d.CreatedAt,
		ConfirmedAt:     d.ConfirmedAt,
		ConfirmedBy:     d.ConfirmedBy,
	}
	if d.Referral != nil {
		out.ReferralCode = &d.Referral.Code
		out.ReferralName = &d.Referral.Name
	}
	return out
}

func PresentAdminDonationSummary(d *models.Donation) AdminDonationSummary {
	return AdminDonationSummary{
		ReferenceNumber: d.ReferenceNumber,
		DonorName:       donorIdentity(d).name,
		IsAnonymous:     d.IsAnonymous,
		Amount:          money(d.Amount),
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
	}
}

func presentSummaries(rows []models.Donation) []DonationSummary {
	out := make([]DonationSummary, 0, len(rows))
	for i := range rows {
		out = append(out, PresentDonationSummary(&rows[i]))
	}
	return out
}
