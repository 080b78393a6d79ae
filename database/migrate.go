// Package database owns the GORM connection and schema migration.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"safetyconnect_backend/internal/config"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens (or returns the cached) GORM connection using the DSN
// from config.yaml.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PartnerProfile{},
		&models.TrainingRequest{},
		&models.Quote{},
		&models.ChatRoom{},
		&models.ChatMessage{},
		&models.MailJob{},
		&models.Document{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	logger.Info("database schema migrated")
	return nil
}
