package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrValidation          = errors.New("invalid reservation request")
	ErrSlotConflict        = errors.New("slot already reserved")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrCourtNotFound       = errors.New("court not found")
	ErrCourtUnavailable    = errors.New("court is under maintenance")
	ErrComplexNotFound     = errors.New("complex not found")
	ErrEmailTaken          = errors.New("admin email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrStoreUnavailable    = errors.New("reservation store unavailable")
)

// pgConnectionClass is the leading SQLSTATE class for connection failures.
const pgConnectionClass = "08"

// classifyStoreErr maps infrastructure failures onto the service taxonomy.
// Unique violations mean a racing insert won the slot; timeouts and
// connection-class failures are transient and safe to retry.
func classifyStoreErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: concurrent booking", ErrSlotConflict)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return fmt.Errorf("%w: concurrent booking", ErrSlotConflict)
		}
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionClass {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return err
}
