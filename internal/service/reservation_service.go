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
	"github.com/facundofernanddez/go-reserve/internal/slot"
	"github.com/facundofernanddez/go-reserve/pkg/rabbitmq"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher delivers lifecycle events to the notification and payment
// collaborators. Failures are the collaborator's problem, never the engine's.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type ReservationInput struct {
	ComplexID   string
	CourtID     string
	Date        string
	Time        string
	ClientName  string
	ClientPhone string
}

type ReservationService interface {
	RequestReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error)
	Transition(ctx context.Context, id string, target models.ReservationStatus) (*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListAvailability(ctx context.Context, courtID, dateStr string) ([]slot.Slot, error)
	ListReservations(ctx context.Context, courtID string) ([]models.Reservation, error)
}

// BookingRules are the per-deployment scheduling parameters.
type BookingRules struct {
	SlotDuration time.Duration
	OpenHour     int
	CloseHour    int
	Location     *time.Location
}

type reservationService struct {
	reservations repository.ReservationRepository
	courts       repository.CourtRepository
	publisher    EventPublisher
	clock        clock.Clock
	rules        BookingRules
	log          *zap.Logger
}

func NewReservationService(
	reservations repository.ReservationRepository,
	courts repository.CourtRepository,
	publisher EventPublisher,
	clk clock.Clock,
	rules BookingRules,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		reservations: reservations,
		courts:       courts,
		publisher:    publisher,
		clock:        clk,
		rules:        rules,
		log:          log,
	}
}

func (s *reservationService) RequestReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error) {
	required := map[string]string{
		"complex_id":   input.ComplexID,
		"court_id":     input.CourtID,
		"date":         input.Date,
		"time":         input.Time,
		"client_name":  input.ClientName,
		"client_phone": input.ClientPhone,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}

	start, err := slot.Normalize(input.Date, input.Time, s.rules.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if start.Before(s.clock.Now()) {
		return nil, fmt.Errorf("%w: cannot reserve a slot in the past", ErrValidation)
	}
	end := start.Add(s.rules.SlotDuration)

	var result *models.Reservation

	err = s.reservations.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the court row — serializes concurrent admissions per court
		court, err := s.courts.FindByIDForUpdate(ctx, tx, input.CourtID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourtNotFound
			}
			return err
		}
		if court.ComplexID != input.ComplexID {
			return fmt.Errorf("%w: court does not belong to complex", ErrValidation)
		}
		if !court.IsAvailable {
			return ErrCourtUnavailable
		}

		// 2. Conflict check against active reservations, half-open intervals
		_, err = s.reservations.FindConflicting(ctx, tx, court.ID, start, end)
		if err == nil {
			return ErrSlotConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 3. Insert in the same transaction
		reservation := &models.Reservation{
			ID:          uuid.NewString(),
			ComplexID:   court.ComplexID,
			CourtID:     court.ID,
			StartTime:   start,
			EndTime:     end,
			ClientName:  strings.TrimSpace(input.ClientName),
			ClientPhone: strings.TrimSpace(input.ClientPhone),
			Status:      models.StatusPending,
		}
		if err := s.reservations.Create(ctx, tx, reservation); err != nil {
			return err
		}

		result = reservation
		return nil
	})
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	return result, nil
}

var allowedTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCanceled},
	models.StatusConfirmed: {models.StatusCanceled, models.StatusCompleted},
}

func transitionAllowed(from, to models.ReservationStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s *reservationService) Transition(ctx context.Context, id string, target models.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, classifyStoreErr(err)
	}

	if target == reservation.Status {
		return nil, fmt.Errorf("%w: already %s", ErrInvalidTransition, target)
	}
	if !transitionAllowed(reservation.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
	}
	if target == models.StatusCompleted && reservation.EndTime.After(s.clock.Now()) {
		return nil, fmt.Errorf("%w: slot has not ended yet", ErrInvalidTransition)
	}

	// Compare-and-set: a concurrent transition that got there first makes
	// this one fail instead of silently overwriting.
	affected, err := s.reservations.UpdateStatusFrom(ctx, id, reservation.Status, target)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: reservation status changed concurrently", ErrInvalidTransition)
	}

	reservation.Status = target
	s.emitHook(reservation)

	return reservation, nil
}

// emitHook publishes the lifecycle event for downstream collaborators.
// Best-effort: the status write is the durable fact, a failed publish is
// logged and dropped.
func (s *reservationService) emitHook(r *models.Reservation) {
	if s.publisher == nil {
		return
	}

	var key string
	switch r.Status {
	case models.StatusConfirmed:
		key = rabbitmq.KeyReservationConfirmed
	case models.StatusCanceled:
		key = rabbitmq.KeyReservationCanceled
	default:
		return
	}

	if err := s.publisher.Publish(key, r); err != nil {
		s.log.Warn("failed to publish lifecycle event",
			zap.String("reservation_id", r.ID),
			zap.String("routing_key", key),
			zap.Error(err),
		)
	}
}

// ListAvailability returns the free slots for a court on one calendar day:
// the candidate grid minus active reservations minus slots already in the
// past. Computed fresh on every call.
func (s *reservationService) ListAvailability(ctx context.Context, courtID, dateStr string) ([]slot.Slot, error) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, s.rules.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, dateStr)
	}

	court, err := s.courts.FindByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, classifyStoreErr(err)
	}
	if !court.IsAvailable {
		return []slot.Slot{}, nil
	}

	grid := slot.Grid(court.ID, day, s.rules.OpenHour, s.rules.CloseHour, s.rules.SlotDuration)
	if len(grid) == 0 {
		return []slot.Slot{}, nil
	}

	dayStart := grid[0].Start
	dayEnd := grid[len(grid)-1].End()
	booked, err := s.reservations.FindActiveInRange(ctx, court.ID, dayStart, dayEnd)
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	now := s.clock.Now()
	free := make([]slot.Slot, 0, len(grid))
	for _, candidate := range grid {
		if candidate.Start.Before(now) {
			continue
		}
		taken := false
		for _, r := range booked {
			occupied := slot.Slot{CourtID: r.CourtID, Start: r.StartTime, Duration: r.EndTime.Sub(r.StartTime)}
			if slot.Overlaps(candidate, occupied) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, candidate)
		}
	}

	return free, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, classifyStoreErr(err)
	}
	return reservation, nil
}

func (s *reservationService) ListReservations(ctx context.Context, courtID string) ([]models.Reservation, error) {
	reservations, err := s.reservations.FindByCourtID(ctx, courtID)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return reservations, nil
}
