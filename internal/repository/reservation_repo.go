package repository

import (
	"context"
	"time"

	"github.com/facundofernanddez/go-reserve/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	// FindConflicting returns an active reservation on the court whose
	// [start_time, end_time) interval intersects [start, end), locking the
	// matched row so racing admissions serialize on it.
	FindConflicting(ctx context.Context, tx *gorm.DB, courtID string, start, end time.Time) (*models.Reservation, error)
	// UpdateStatusFrom is a compare-and-set: the write applies only if the
	// record still carries the expected status. Returns rows affected.
	UpdateStatusFrom(ctx context.Context, id string, from, to models.ReservationStatus) (int64, error)
	FindByCourtID(ctx context.Context, courtID string) ([]models.Reservation, error)
	FindActiveInRange(ctx context.Context, courtID string, from, to time.Time) ([]models.Reservation, error)
	// Transaction runs fn inside a single database transaction; the admission
	// conflict check and insert go through it as one atomic unit.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	return tx.WithContext(ctx).Create(res).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) FindConflicting(ctx context.Context, tx *gorm.DB, courtID string, start, end time.Time) (*models.Reservation, error) {
	var res models.Reservation
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("court_id = ? AND status <> ?", courtID, models.StatusCanceled).
		Where("start_time < ? AND end_time > ?", end, start).
		Take(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) UpdateStatusFrom(ctx context.Context, id string, from, to models.ReservationStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *reservationRepository) FindByCourtID(ctx context.Context, courtID string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("court_id = ?", courtID).
		Order("start_time ASC, created_at ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindActiveInRange(ctx context.Context, courtID string, from, to time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND status <> ?", courtID, models.StatusCanceled).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC, created_at ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}
