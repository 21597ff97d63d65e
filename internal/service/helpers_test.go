package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mcatania72/CRM-System-NEW/internal/auth"
	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full
// schema migrated. Each test gets its own named database so parallel
// tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Opportunity{},
		&model.Activity{},
		&model.Interaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		Email:     email,
		Password:  hash,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestCustomer(t *testing.T, db *gorm.DB, name string) *model.Customer {
	t.Helper()

	customer := &model.Customer{
		Name:    name,
		Company: name + " Inc",
		Status:  model.CustomerActive,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}
