package models

import "github.com/shopspring/decimal"

// Referral attributes donations to a sponsoring person. TotalDonations and
// TotalAmount are denormalized counters maintained on confirmation.
type Referral struct {
	BaseModel
	Code           string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Email          *string         `gorm:"type:varchar(255);index" json:"email"`
	Phone          *string         `gorm:"type:varchar(50)" json:"phone"`
	IsActive       bool            `gorm:"not null;index" json:"is_active"`
	TotalDonations int64           `gorm:"not null" json:"total_donations"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
}

func (Referral) TableName() string {
	return "referrals"
}
