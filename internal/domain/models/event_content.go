package models

// Well-known content sections
const (
	SectionBankInfo = "bank_info"
)

// EventContent is an editable block of event copy keyed by section
type EventContent struct {
	BaseModel
	Section      string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"section"`
	Title        string  `gorm:"type:varchar(255);not null" json:"title"`
	Content      string  `gorm:"type:text;not null" json:"content"`
	ImageURL     *string `gorm:"type:varchar(500)" json:"image_url"`
	DisplayOrder int     `gorm:"not null" json:"display_order"`
	IsActive     bool    `gorm:"not null" json:"is_active"`
	IsPublished  bool    `gorm:"not null" json:"is_published"`
}

func (EventContent) TableName() string {
	return "event_content"
}
