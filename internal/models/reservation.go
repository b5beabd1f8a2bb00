package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCanceled  ReservationStatus = "canceled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation is a single-party booking of a court slot. Records are never
// deleted; cancellation is a status, which keeps the audit trail intact.
type Reservation struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	ComplexID   string            `gorm:"type:uuid;not null;index" json:"complex_id"`
	CourtID     string            `gorm:"type:uuid;not null;index" json:"court_id"`
	StartTime   time.Time         `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time         `gorm:"not null" json:"end_time"`
	ClientName  string            `gorm:"not null" json:"client_name"`
	ClientPhone string            `gorm:"not null" json:"client_phone"`
	Status      ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Active reports whether the reservation still occupies its slot.
func (r *Reservation) Active() bool {
	return r.Status != StatusCanceled
}
