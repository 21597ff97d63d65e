package infrastructure

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/config"
	"github.com/mcatania72/CRM-System-NEW/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the configured backend using GORM.
// DB_DRIVER=sqlite uses the embedded file engine; DB_DRIVER=postgres
// connects to a networked server.
func ConnectDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Silent,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig)
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// MigrateAllSchemas performs all database migrations in dependency order.
func MigrateAllSchemas(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("failed to migrate User table: %w", err)
	}
	if err := db.AutoMigrate(&model.Customer{}); err != nil {
		return fmt.Errorf("failed to migrate Customer table: %w", err)
	}
	if err := db.AutoMigrate(&model.Opportunity{}); err != nil {
		return fmt.Errorf("failed to migrate Opportunity table: %w", err)
	}
	if err := db.AutoMigrate(&model.Activity{}); err != nil {
		return fmt.Errorf("failed to migrate Activity table: %w", err)
	}
	if err := db.AutoMigrate(&model.Interaction{}); err != nil {
		return fmt.Errorf("failed to migrate Interaction table: %w", err)
	}

	if err := createAdditionalIndexes(db); err != nil {
		return fmt.Errorf("failed to create additional indexes: %w", err)
	}

	return nil
}

// createAdditionalIndexes creates composite indexes the query paths rely on.
func createAdditionalIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_activities_assignee_status
		ON activities(assigned_to_id, status)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_opportunities_customer_stage
		ON opportunities(customer_id, stage)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_interactions_customer_created
		ON interactions(customer_id, created_at)
	`).Error; err != nil {
		return err
	}

	return nil
}
