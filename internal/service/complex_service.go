package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/facundofernanddez/go-reserve/internal/clock"
	"github.com/facundofernanddez/go-reserve/internal/models"
	"github.com/facundofernanddez/go-reserve/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterComplexInput struct {
	Name       string
	Location   string
	AdminEmail string
	Password   string
}

type ComplexService interface {
	Register(ctx context.Context, input RegisterComplexInput) (*models.Complex, error)
	Login(ctx context.Context, email, password string) (string, *models.Complex, error)
	ListComplexes(ctx context.Context, location string) ([]models.Complex, error)
}

type complexService struct {
	complexes repository.ComplexRepository
	clock     clock.Clock
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewComplexService(complexes repository.ComplexRepository, clk clock.Clock, jwtSecret string, jwtTTL time.Duration) ComplexService {
	return &complexService{
		complexes: complexes,
		clock:     clk,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

func (s *complexService) Register(ctx context.Context, input RegisterComplexInput) (*models.Complex, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.AdminEmail) == "" {
		return nil, fmt.Errorf("%w: name and admin email are required", ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	complex := &models.Complex{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Location:     strings.TrimSpace(input.Location),
		AdminEmail:   strings.ToLower(strings.TrimSpace(input.AdminEmail)),
		PasswordHash: string(hash),
	}
	if err := s.complexes.Create(ctx, complex); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, classifyStoreErr(err)
	}
	return complex, nil
}

func (s *complexService) Login(ctx context.Context, email, password string) (string, *models.Complex, error) {
	complex, err := s.complexes.FindByAdminEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, classifyStoreErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(complex.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   complex.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, complex, nil
}

func (s *complexService) ListComplexes(ctx context.Context, location string) ([]models.Complex, error) {
	complexes, err := s.complexes.FindByLocation(ctx, location)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return complexes, nil
}
