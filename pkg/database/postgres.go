package database

import (
	"fmt"

	"github.com/facundofernanddez/go-reserve/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Complex{}, &models.Court{}, &models.Reservation{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial unique index: no two active reservations may share a court and
	// start instant. Backstop for the in-transaction conflict check.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_active_slot
		ON reservations (court_id, start_time)
		WHERE status <> 'canceled'
	`).Error; err != nil {
		return nil, fmt.Errorf("create slot index: %w", err)
	}

	return db, nil
}
