package service

import (
	"context"
	"testing"
	"time"

	"github.com/facundofernanddez/go-reserve/internal/clock"
	"github.com/facundofernanddez/go-reserve/internal/models"
	"github.com/facundofernanddez/go-reserve/internal/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	createFn           func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	findByIDFn         func(ctx context.Context, id string) (*models.Reservation, error)
	findConflictingFn  func(ctx context.Context, tx *gorm.DB, courtID string, start, end time.Time) (*models.Reservation, error)
	updateStatusFromFn func(ctx context.Context, id string, from, to models.ReservationStatus) (int64, error)
	findByCourtFn      func(ctx context.Context, courtID string) ([]models.Reservation, error)
	findActiveFn       func(ctx context.Context, courtID string, from, to time.Time) ([]models.Reservation, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, r)
	}
	return nil
}

func (m *mockReservationRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockReservationRepo) FindConflicting(ctx context.Context, tx *gorm.DB, courtID string, start, end time.Time) (*models.Reservation, error) {
	if m.findConflictingFn != nil {
		return m.findConflictingFn(ctx, tx, courtID, start, end)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.ReservationStatus) (int64, error) {
	if m.updateStatusFromFn != nil {
		return m.updateStatusFromFn(ctx, id, from, to)
	}
	return 1, nil
}

func (m *mockReservationRepo) FindByCourtID(ctx context.Context, courtID string) ([]models.Reservation, error) {
	return m.findByCourtFn(ctx, courtID)
}

func (m *mockReservationRepo) FindActiveInRange(ctx context.Context, courtID string, from, to time.Time) ([]models.Reservation, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, courtID, from, to)
	}
	return nil, nil
}

func (m *mockReservationRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock CourtRepository ---

type mockCourtRepo struct {
	findByIDFn func(ctx context.Context, id string) (*models.Court, error)
}

func (m *mockCourtRepo) Create(ctx context.Context, c *models.Court) error { return nil }
func (m *mockCourtRepo) FindByID(ctx context.Context, id string) (*models.Court, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCourtRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Court, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCourtRepo) FindByComplexID(ctx context.Context, complexID, sport string) ([]models.Court, error) {
	return nil, nil
}
func (m *mockCourtRepo) Update(ctx context.Context, c *models.Court) error { return nil }

// --- Mock EventPublisher ---

type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	return p.err
}

// --- Fixtures ---

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func testRules() BookingRules {
	return BookingRules{
		SlotDuration: time.Hour,
		OpenHour:     8,
		CloseHour:    23,
		Location:     time.UTC,
	}
}

func openCourt(id, complexID string) *models.Court {
	return &models.Court{ID: id, ComplexID: complexID, Name: "Court 1", Sport: "futbol", Price: 100, IsAvailable: true}
}

func newTestService(resRepo *mockReservationRepo, courtRepo *mockCourtRepo, pub EventPublisher) ReservationService {
	return NewReservationService(resRepo, courtRepo, pub, clock.NewFixed(testNow), testRules(), zap.NewNop())
}

func validInput() ReservationInput {
	return ReservationInput{
		ComplexID:   "complex-1",
		CourtID:     "court-1",
		Date:        "2025-06-01",
		Time:        "10:00",
		ClientName:  "Ana Gomez",
		ClientPhone: "+54 379 4000000",
	}
}

// --- RequestReservation ---

func TestRequestReservation_Success(t *testing.T) {
	resRepo := &mockReservationRepo{}
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return openCourt(id, "complex-1"), nil
		},
	}

	svc := newTestService(resRepo, courtRepo, nil)
	reservation, err := svc.RequestReservation(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, models.StatusPending, reservation.Status)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), reservation.StartTime)
	assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), reservation.EndTime)
	assert.Equal(t, "court-1", reservation.CourtID)
	assert.Equal(t, "Ana Gomez", reservation.ClientName)
}

func TestRequestReservation_MissingFields(t *testing.T) {
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return openCourt(id, "complex-1"), nil
		},
	}
	svc := newTestService(&mockReservationRepo{}, courtRepo, nil)

	mutations := []struct {
		name   string
		mutate func(*ReservationInput)
	}{
		{"empty complex id", func(in *ReservationInput) { in.ComplexID = "" }},
		{"empty court id", func(in *ReservationInput) { in.CourtID = "  " }},
		{"empty date", func(in *ReservationInput) { in.Date = "" }},
		{"empty time", func(in *ReservationInput) { in.Time = "" }},
		{"blank client name", func(in *ReservationInput) { in.ClientName = "   " }},
		{"empty client phone", func(in *ReservationInput) { in.ClientPhone = "" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := svc.RequestReservation(context.Background(), input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRequestReservation_UnparsableSlot(t *testing.T) {
	svc := newTestService(&mockReservationRepo{}, &mockCourtRepo{}, nil)

	input := validInput()
	input.Date = "01/06/2025"
	_, err := svc.RequestReservation(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidation)

	input = validInput()
	input.Time = "10"
	_, err = svc.RequestReservation(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequestReservation_PastStart(t *testing.T) {
	svc := newTestService(&mockReservationRepo{}, &mockCourtRepo{}, nil)

	input := validInput()
	input.Time = "08:00" // clock is pinned at 09:00 that day
	_, err := svc.RequestReservation(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequestReservation_CourtNotFound(t *testing.T) {
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(&mockReservationRepo{}, courtRepo, nil)

	_, err := svc.RequestReservation(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestRequestReservation_CourtUnderMaintenance(t *testing.T) {
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			court := openCourt(id, "complex-1")
			court.IsAvailable = false
			return court, nil
		},
	}
	svc := newTestService(&mockReservationRepo{}, courtRepo, nil)

	_, err := svc.RequestReservation(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrCourtUnavailable)
}

func TestRequestReservation_WrongComplex(t *testing.T) {
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return openCourt(id, "another-complex"), nil
		},
	}
	svc := newTestService(&mockReservationRepo{}, courtRepo, nil)

	_, err := svc.RequestReservation(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequestReservation_Conflict(t *testing.T) {
	created := false
	resRepo := &mockReservationRepo{
		findConflictingFn: func(ctx context.Context, tx *gorm.DB, courtID string, start, end time.Time) (*models.Reservation, error) {
			return &models.Reservation{ID: "existing", CourtID: courtID}, nil
		},
		createFn: func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
			created = true
			return nil
		},
	}
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return openCourt(id, "complex-1"), nil
		},
	}
	svc := newTestService(resRepo, courtRepo, nil)

	_, err := svc.RequestReservation(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, created, "conflicting request must not write")
}

func TestRequestReservation_RacingInsertLosesAsConflict(t *testing.T) {
	resRepo := &mockReservationRepo{
		createFn: func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
			// The partial unique index fires when a concurrent insert won.
			return gorm.ErrDuplicatedKey
		},
	}
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return openCourt(id, "complex-1"), nil
		},
	}
	svc := newTestService(resRepo, courtRepo, nil)

	_, err := svc.RequestReservation(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestRequestReservation_StoreTimeout(t *testing.T) {
	resRepo := &mockReservationRepo{
		findConflictingFn: func(ctx context.Context, tx *gorm.DB, courtID string, start, end time.Time) (*models.Reservation, error) {
			return nil, context.DeadlineExceeded
		},
	}
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return openCourt(id, "complex-1"), nil
		},
	}
	svc := newTestService(resRepo, courtRepo, nil)

	_, err := svc.RequestReservation(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// --- Transition ---

func reservationInStatus(status models.ReservationStatus) *models.Reservation {
	return &models.Reservation{
		ID:        "res-1",
		ComplexID: "complex-1",
		CourtID:   "court-1",
		StartTime: testNow.Add(-2 * time.Hour),
		EndTime:   testNow.Add(-1 * time.Hour),
		Status:    status,
	}
}

func TestTransition_TableClosure(t *testing.T) {
	statuses := []models.ReservationStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCanceled, models.StatusCompleted,
	}
	allowed := map[[2]models.ReservationStatus]bool{
		{models.StatusPending, models.StatusConfirmed}:   true,
		{models.StatusPending, models.StatusCanceled}:    true,
		{models.StatusConfirmed, models.StatusCanceled}:  true,
		{models.StatusConfirmed, models.StatusCompleted}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				resRepo := &mockReservationRepo{
					findByIDFn: func(ctx context.Context, id string) (*models.Reservation, error) {
						return reservationInStatus(from), nil
					},
				}
				svc := newTestService(resRepo, &mockCourtRepo{}, nil)

				got, err := svc.Transition(context.Background(), "res-1", to)
				if allowed[[2]models.ReservationStatus{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, to, got.Status)
				} else {
					assert.ErrorIs(t, err, ErrInvalidTransition)
				}
			})
		}
	}
}

func TestTransition_CompleteBeforeSlotEnds(t *testing.T) {
	resRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Reservation, error) {
			r := reservationInStatus(models.StatusConfirmed)
			r.StartTime = testNow.Add(1 * time.Hour)
			r.EndTime = testNow.Add(2 * time.Hour)
			return r, nil
		},
	}
	svc := newTestService(resRepo, &mockCourtRepo{}, nil)

	_, err := svc.Transition(context.Background(), "res-1", models.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_NotFound(t *testing.T) {
	resRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Reservation, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(resRepo, &mockCourtRepo{}, nil)

	_, err := svc.Transition(context.Background(), "missing", models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestTransition_LostRaceFailsInsteadOfOverwriting(t *testing.T) {
	resRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Reservation, error) {
			return reservationInStatus(models.StatusPending), nil
		},
		updateStatusFromFn: func(ctx context.Context, id string, from, to models.ReservationStatus) (int64, error) {
			return 0, nil // someone else transitioned first
		},
	}
	svc := newTestService(resRepo, &mockCourtRepo{}, nil)

	_, err := svc.Transition(context.Background(), "res-1", models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_EmitsLifecycleHooks(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ReservationStatus
		to      models.ReservationStatus
		wantKey string
	}{
		{"confirm fires payment hook", models.StatusPending, models.StatusConfirmed, "reservation.confirmed"},
		{"cancel fires release hook", models.StatusPending, models.StatusCanceled, "reservation.canceled"},
		{"cancel confirmed fires release hook", models.StatusConfirmed, models.StatusCanceled, "reservation.canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := &mockReservationRepo{
				findByIDFn: func(ctx context.Context, id string) (*models.Reservation, error) {
					return reservationInStatus(tt.from), nil
				},
			}
			pub := &recordingPublisher{}
			svc := newTestService(resRepo, &mockCourtRepo{}, pub)

			_, err := svc.Transition(context.Background(), "res-1", tt.to)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantKey}, pub.keys)
		})
	}
}

func TestTransition_CompleteEmitsNoHook(t *testing.T) {
	resRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Reservation, error) {
			return reservationInStatus(models.StatusConfirmed), nil
		},
	}
	pub := &recordingPublisher{}
	svc := newTestService(resRepo, &mockCourtRepo{}, pub)

	_, err := svc.Transition(context.Background(), "res-1", models.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, pub.keys)
}

func TestTransition_HookFailureDoesNotFailTransition(t *testing.T) {
	resRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Reservation, error) {
			return reservationInStatus(models.StatusPending), nil
		},
	}
	pub := &recordingPublisher{err: assert.AnError}
	svc := newTestService(resRepo, &mockCourtRepo{}, pub)

	got, err := svc.Transition(context.Background(), "res-1", models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

// --- ListAvailability ---

func TestListAvailability_ExcludesBookedAndPast(t *testing.T) {
	booked := models.Reservation{
		ID:        "res-1",
		CourtID:   "court-1",
		StartTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
		Status:    models.StatusPending,
	}
	resRepo := &mockReservationRepo{
		findActiveFn: func(ctx context.Context, courtID string, from, to time.Time) ([]models.Reservation, error) {
			return []models.Reservation{booked}, nil
		},
	}
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			return openCourt(id, "complex-1"), nil
		},
	}
	svc := newTestService(resRepo, courtRepo, nil)

	free, err := svc.ListAvailability(context.Background(), "court-1", "2025-06-01")
	require.NoError(t, err)

	// Grid 08:00-23:00 is 15 hourly slots; 08:00 is past (now=09:00) and
	// 10:00 is booked.
	assert.Len(t, free, 13)
	for _, s := range free {
		assert.False(t, s.Start.Before(testNow), "past slot leaked: %v", s.Start)
		assert.False(t, slot.Overlaps(s, slot.Slot{CourtID: "court-1", Start: booked.StartTime, Duration: time.Hour}),
			"booked slot leaked: %v", s.Start)
	}
}

func TestListAvailability_MaintenanceCourtHasNoSlots(t *testing.T) {
	courtRepo := &mockCourtRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Court, error) {
			court := openCourt(id, "complex-1")
			court.IsAvailable = false
			return court, nil
		},
	}
	svc := newTestService(&mockReservationRepo{}, courtRepo, nil)

	free, err := svc.ListAvailability(context.Background(), "court-1", "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestListAvailability_BadDate(t *testing.T) {
	svc := newTestService(&mockReservationRepo{}, &mockCourtRepo{}, nil)

	_, err := svc.ListAvailability(context.Background(), "court-1", "June 1st")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListReservations_Ordering(t *testing.T) {
	resRepo := &mockReservationRepo{
		findByCourtFn: func(ctx context.Context, courtID string) ([]models.Reservation, error) {
			return []models.Reservation{
				{ID: "a", StartTime: testNow.Add(1 * time.Hour)},
				{ID: "b", StartTime: testNow.Add(2 * time.Hour)},
			}, nil
		},
	}
	svc := newTestService(resRepo, &mockCourtRepo{}, nil)

	got, err := svc.ListReservations(context.Background(), "court-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}
