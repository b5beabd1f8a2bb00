package repository

import (
	"context"

	"github.com/facundofernanddez/go-reserve/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourtRepository interface {
	Create(ctx context.Context, court *models.Court) error
	FindByID(ctx context.Context, id string) (*models.Court, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Court, error)
	FindByComplexID(ctx context.Context, complexID, sport string) ([]models.Court, error)
	Update(ctx context.Context, court *models.Court) error
}

type courtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) Create(ctx context.Context, court *models.Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

func (r *courtRepository) FindByID(ctx context.Context, id string) (*models.Court, error) {
	var court models.Court
	if err := r.db.WithContext(ctx).First(&court, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

// FindByIDForUpdate acquires a row-level lock on the court within the given
// transaction, serializing concurrent admissions per court.
func (r *courtRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Court, error) {
	var court models.Court
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&court, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) FindByComplexID(ctx context.Context, complexID, sport string) ([]models.Court, error) {
	var courts []models.Court
	q := r.db.WithContext(ctx).Where("complex_id = ?", complexID)
	if sport != "" {
		q = q.Where("LOWER(sport) = LOWER(?)", sport)
	}
	if err := q.Order("name ASC").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *courtRepository) Update(ctx context.Context, court *models.Court) error {
	return r.db.WithContext(ctx).Save(court).Error
}
