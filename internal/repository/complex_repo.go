package repository

import (
	"context"

	"github.com/facundofernanddez/go-reserve/internal/models"
	"gorm.io/gorm"
)

type ComplexRepository interface {
	Create(ctx context.Context, complex *models.Complex) error
	FindByID(ctx context.Context, id string) (*models.Complex, error)
	FindByAdminEmail(ctx context.Context, email string) (*models.Complex, error)
	FindByLocation(ctx context.Context, location string) ([]models.Complex, error)
}

type complexRepository struct {
	db *gorm.DB
}

func NewComplexRepository(db *gorm.DB) ComplexRepository {
	return &complexRepository{db: db}
}

func (r *complexRepository) Create(ctx context.Context, complex *models.Complex) error {
	return r.db.WithContext(ctx).Create(complex).Error
}

func (r *complexRepository) FindByID(ctx context.Context, id string) (*models.Complex, error) {
	var complex models.Complex
	if err := r.db.WithContext(ctx).First(&complex, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &complex, nil
}

func (r *complexRepository) FindByAdminEmail(ctx context.Context, email string) (*models.Complex, error) {
	var complex models.Complex
	if err := r.db.WithContext(ctx).First(&complex, "admin_email = ?", email).Error; err != nil {
		return nil, err
	}
	return &complex, nil
}

// FindByLocation lists complexes, optionally filtered by a case-insensitive
// partial location match.
func (r *complexRepository) FindByLocation(ctx context.Context, location string) ([]models.Complex, error) {
	var complexes []models.Complex
	q := r.db.WithContext(ctx)
	if location != "" {
		q = q.Where("location ILIKE ?", "%"+location+"%")
	}
	if err := q.Order("name ASC").Find(&complexes).Error; err != nil {
		return nil, err
	}
	return complexes, nil
}
