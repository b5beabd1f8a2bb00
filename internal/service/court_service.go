package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/facundofernanddez/go-reserve/internal/models"
	"github.com/facundofernanddez/go-reserve/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCourtInput struct {
	ComplexID   string
	Name        string
	Sport       string
	Price       float64
	Description string
	Features    []string
}

// UpdateCourtInput carries a partial update; nil fields are left untouched.
type UpdateCourtInput struct {
	Name        *string
	Price       *float64
	Description *string
	Features    []string
	IsAvailable *bool
}

type CourtService interface {
	CreateCourt(ctx context.Context, input CreateCourtInput) (*models.Court, error)
	GetCourt(ctx context.Context, id string) (*models.Court, error)
	ListCourts(ctx context.Context, complexID, sport string) ([]models.Court, error)
	UpdateCourt(ctx context.Context, id, complexID string, input UpdateCourtInput) (*models.Court, error)
}

type courtService struct {
	courts    repository.CourtRepository
	complexes repository.ComplexRepository
}

func NewCourtService(courts repository.CourtRepository, complexes repository.ComplexRepository) CourtService {
	return &courtService{courts: courts, complexes: complexes}
}

func (s *courtService) CreateCourt(ctx context.Context, input CreateCourtInput) (*models.Court, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Sport) == "" {
		return nil, fmt.Errorf("%w: name and sport are required", ErrValidation)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	if _, err := s.complexes.FindByID(ctx, input.ComplexID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplexNotFound
		}
		return nil, classifyStoreErr(err)
	}

	features, err := json.Marshal(input.Features)
	if err != nil {
		return nil, fmt.Errorf("%w: bad features", ErrValidation)
	}

	court := &models.Court{
		ID:          uuid.NewString(),
		ComplexID:   input.ComplexID,
		Name:        strings.TrimSpace(input.Name),
		Sport:       strings.ToLower(strings.TrimSpace(input.Sport)),
		Price:       input.Price,
		Description: input.Description,
		Features:    features,
		IsAvailable: true,
	}
	if err := s.courts.Create(ctx, court); err != nil {
		return nil, classifyStoreErr(err)
	}
	return court, nil
}

func (s *courtService) GetCourt(ctx context.Context, id string) (*models.Court, error) {
	court, err := s.courts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, classifyStoreErr(err)
	}
	return court, nil
}

func (s *courtService) ListCourts(ctx context.Context, complexID, sport string) ([]models.Court, error) {
	if complexID == "" {
		return nil, fmt.Errorf("%w: complex_id is required", ErrValidation)
	}
	courts, err := s.courts.FindByComplexID(ctx, complexID, sport)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return courts, nil
}

func (s *courtService) UpdateCourt(ctx context.Context, id, complexID string, input UpdateCourtInput) (*models.Court, error) {
	court, err := s.courts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, classifyStoreErr(err)
	}
	if court.ComplexID != complexID {
		return nil, ErrCourtNotFound
	}

	if input.Name != nil {
		court.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		court.Price = *input.Price
	}
	if input.Description != nil {
		court.Description = *input.Description
	}
	if input.Features != nil {
		features, err := json.Marshal(input.Features)
		if err != nil {
			return nil, fmt.Errorf("%w: bad features", ErrValidation)
		}
		court.Features = features
	}
	if input.IsAvailable != nil {
		court.IsAvailable = *input.IsAvailable
	}

	if err := s.courts.Update(ctx, court); err != nil {
		return nil, classifyStoreErr(err)
	}
	return court, nil
}
