package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
)

// Actor identifies who triggered an operation. AdminID is nil for public requests.
type Actor struct {
	AdminID  *uint
	Username string
	IP       string
}

// optional trims s and turns blank values into nil
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// money converts an exact amount to a JSON number rounded to cents
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// dbError wraps a store failure, mapping record-not-found to notFoundCode
func dbError(err error, notFoundCode int) error {
	if database.IsNotFound(err) {
		return code.New(notFoundCode)
	}
	return code.Wrap(code.ErrDatabase, err)
}

// writeAudit records an audit entry on db, which may be a transaction
func writeAudit(db *gorm.DB, action models.AuditAction, actor Actor, resourceID, details string) error {
	entry := models.AuditLog{
		Action:     action,
		AdminID:    actor.AdminID,
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  actor.IP,
	}
	return db.Create(&entry).Error
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
