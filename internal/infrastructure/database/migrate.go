package database

import (
	"github.com/roomstays/payment-service/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations. Only the tables this service owns are
// migrated; users, listings and locations belong to the platform schema.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	logger.Info("Running GORM auto-migrations...")
	err := db.AutoMigrate(
		&model.UserProfile{},
		&model.Transaction{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}
	logger.Info("GORM auto-migrations completed successfully")

	// Create custom indexes and constraints
	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}
	logger.Info("Custom indexes created successfully")

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates custom indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// One ledger row per charge per booking; duplicate inserts surface as
	// gorm.ErrDuplicatedKey and are resolved by re-reading the existing row.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_booking_charge ON transactions (booking_id, transaction_id)`).Error; err != nil {
		return err
	}

	return nil
}
