package models

// AuditAction identifies an administrative operation
type AuditAction string

const (
	AuditAdminLogin         AuditAction = "ADMIN_LOGIN"
	AuditDonationStatus     AuditAction = "DONATION_STATUS_UPDATE"
	AuditContentUpsert      AuditAction = "CONTENT_UPSERT"
	AuditPrivacyExport      AuditAction = "GDPR_EXPORT"
	AuditPrivacyErase       AuditAction = "GDPR_ERASE"
	AuditRetentionCandidate AuditAction = "RETENTION_REVIEW"
)

// AuditLog records administrative and data-subject operations.
// Details never carry donor personal data.
type AuditLog struct {
	BaseModel
	Action     AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`
	AdminID    *uint       `gorm:"index" json:"admin_id"` // nil for public or system operations
	ResourceID string      `gorm:"type:varchar(100)" json:"resource_id"`
	Details    string      `gorm:"type:text" json:"details"`
	IPAddress  string      `gorm:"type:varchar(45)" json:"ip_address"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
