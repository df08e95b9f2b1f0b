package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationStatus is the review state of a donation
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusConfirmed DonationStatus = "confirmed"
	DonationStatusRejected  DonationStatus = "rejected"
)

// DonationStatuses lists every known status in display order
var DonationStatuses = []DonationStatus{
	DonationStatusPending,
	DonationStatusConfirmed,
	DonationStatusRejected,
}

// Valid reports whether s is one of the known statuses
func (s DonationStatus) Valid() bool {
	for _, known := range DonationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

const DefaultCurrency = "EUR"

// Donation is a pledged bank transfer awaiting manual reconciliation.
// Identity fields are nil for anonymous donations.
type Donation struct {
	BaseModel
	ReferenceNumber string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference_number"`
	DonorName       *string         `gorm:"type:varchar(255)" json:"donor_name"`
	DonorEmail      *string         `gorm:"type:varchar(255);index" json:"donor_email"`
	DonorPhone      *string         `gorm:"type:varchar(50)" json:"donor_phone"`
	DonorCountry    *string         `gorm:"type:varchar(100)" json:"donor_country"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency        string          `gorm:"type:varchar(3);not null" json:"currency"`
	IsAnonymous     bool            `gorm:"not null" json:"is_anonymous"`
	Message         *string         `gorm:"type:text" json:"message"`
	ReferralID      *uint           `gorm:"index" json:"referral_id"`
	UTMSource       *string         `gorm:"type:varchar(100)" json:"utm_source"`
	UTMMedium       *string         `gorm:"type:varchar(100)" json:"utm_medium"`
	UTMCampaign     *string         `gorm:"type:varchar(100)" json:"utm_campaign"`
	Status          DonationStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	ConfirmedAt     *time.Time      `json:"confirmed_at"`
	ConfirmedBy     *string         `gorm:"type:varchar(100)" json:"confirmed_by"`

	Referral *Referral `gorm:"foreignKey:ReferralID" json:"-"`
}

func (Donation) TableName() string {
	return "donations"
}
