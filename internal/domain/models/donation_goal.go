package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationGoal is a fundraising target; only the newest active row is shown
type DonationGoal struct {
	BaseModel
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   *string         `gorm:"type:text" json:"description"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"current_amount"`
	IsActive      bool            `gorm:"not null;index" json:"is_active"`
	StartDate     *time.Time      `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
}

func (DonationGoal) TableName() string {
	return "donation_goals"
}
