package dto

import (
	"encoding/json"
	"time"

	"github.com/facundofernanddez/go-reserve/internal/models"
	"github.com/facundofernanddez/go-reserve/internal/slot"
)

type ReservationResponse struct {
	ID          string                   `json:"id"`
	ComplexID   string                   `json:"complex_id"`
	CourtID     string                   `json:"court_id"`
	StartTime   time.Time                `json:"start_time"`
	EndTime     time.Time                `json:"end_time"`
	ClientName  string                   `json:"client_name"`
	ClientPhone string                   `json:"client_phone"`
	Status      models.ReservationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}

type SlotResponse struct {
	CourtID   string    `json:"court_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type CourtResponse struct {
	ID          string   `json:"id"`
	ComplexID   string   `json:"complex_id"`
	Name        string   `json:"name"`
	Sport       string   `json:"sport"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	IsAvailable bool     `json:"is_available"`
}

type ComplexResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	AdminEmail string `json:"admin_email"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Complex ComplexResponse `json:"complex"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		ComplexID:   r.ComplexID,
		CourtID:     r.CourtID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func ToSlotResponse(s slot.Slot) SlotResponse {
	return SlotResponse{
		CourtID:   s.CourtID,
		StartTime: s.Start,
		EndTime:   s.End(),
	}
}

func ToCourtResponse(c *models.Court) CourtResponse {
	var features []string
	if len(c.Features) > 0 {
		_ = json.Unmarshal(c.Features, &features)
	}
	return CourtResponse{
		ID:          c.ID,
		ComplexID:   c.ComplexID,
		Name:        c.Name,
		Sport:       c.Sport,
		Price:       c.Price,
		Description: c.Description,
		Features:    features,
		IsAvailable: c.IsAvailable,
	}
}

func ToComplexResponse(c *models.Complex) ComplexResponse {
	return ComplexResponse{
		ID:         c.ID,
		Name:       c.Name,
		Location:   c.Location,
		AdminEmail: c.AdminEmail,
	}
}
