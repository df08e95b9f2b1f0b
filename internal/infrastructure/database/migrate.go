package database

import (
	"errors"
	"fmt"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
	"github.com/malamapl09/donaciones-pola-allande/pkg/utils"
	"gorm.io/gorm"
)

// Migrate applies the schema according to mode:
// "auto" only adds tables and columns, "drop" recreates every table, "none" skips.
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case "none":
		logger.Info("schema migration disabled")
		return nil
	case "drop":
		logger.Warning("running in drop mode, every table will be recreated")
		all := models.All()
		for i := len(all) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(all[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	case "auto", "":
	default:
		return fmt.Errorf("unknown migration mode %q", mode)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("database migration completed")
	return nil
}

// EnsureAdminExists creates the default administrator when admin_users is empty.
// It reports whether an account was created.
func EnsureAdminExists(db *gorm.DB, username, email, password string) (bool, error) {
	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, errors.New("default admin password is empty")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash default admin password: %w", err)
	}

	admin := models.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create default admin: %w", err)
	}

	logger.Info("default admin account %q created", username)
	return true, nil
}
