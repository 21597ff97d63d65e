package infrastructure

import (
	"errors"
	"fmt"

	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@crm.local"
	defaultAdminPassword = "admin123"
)

// EnsureDefaultAdmin creates the bootstrap admin account when no user with
// the default admin email exists yet. It is safe to call on every startup.
func EnsureDefaultAdmin(db *gorm.DB) error {
	var existing model.User
	err := db.Where("email = ?", defaultAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Email:     defaultAdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "CRM",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	return nil
}
