package handler

import (
	"net/http"

	"github.com/facundofernanddez/go-reserve/internal/dto"
	"github.com/facundofernanddez/go-reserve/internal/models"
	"github.com/facundofernanddez/go-reserve/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	reservations := e.Group("/api/v1/reservations")
	reservations.POST("", h.CreateReservation)
	reservations.GET("/:id", h.GetReservation)
	reservations.POST("/:id/confirm", h.ConfirmReservation)
	reservations.POST("/:id/cancel", h.CancelReservation)
	reservations.POST("/:id/complete", h.CompleteReservation)

	courts := e.Group("/api/v1/courts")
	courts.GET("/:id/reservations", h.ListReservations)
	courts.GET("/:id/availability", h.ListAvailability)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservation, err := h.svc.RequestReservation(c.Request().Context(), service.ReservationInput{
		ComplexID:   req.ComplexID,
		CourtID:     req.CourtID,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	reservation, err := h.svc.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) ConfirmReservation(c echo.Context) error {
	return h.transition(c, models.StatusConfirmed)
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	return h.transition(c, models.StatusCanceled)
}

func (h *ReservationHandler) CompleteReservation(c echo.Context) error {
	return h.transition(c, models.StatusCompleted)
}

func (h *ReservationHandler) transition(c echo.Context, target models.ReservationStatus) error {
	reservation, err := h.svc.Transition(c.Request().Context(), c.Param("id"), target)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	reservations, err := h.svc.ListReservations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) ListAvailability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}

	free, err := h.svc.ListAvailability(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.SlotResponse, len(free))
	for i, s := range free {
		resp[i] = dto.ToSlotResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}
