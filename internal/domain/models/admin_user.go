package models

import "time"

// AdminUser represents an administrator allowed to review donations
type AdminUser struct {
	BaseModel
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"` // never exposed in JSON
	Role         string     `gorm:"type:varchar(50);not null" json:"role"` // admin, super_admin
	IsActive     bool       `gorm:"not null" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)
