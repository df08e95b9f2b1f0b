package database

import "gorm.io/gorm"

// MonthBucket returns a SQL expression formatting column as YYYY-MM for the
// dialect behind db.
func MonthBucket(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "DATE_FORMAT(" + column + ", '%Y-%m')"
	case "sqlite":
		return "substr(" + column + ", 1, 7)"
	default:
		return "TO_CHAR(" + column + ", 'YYYY-MM')"
	}
}
