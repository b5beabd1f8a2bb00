package handler

import (
	"net/http"

	"github.com/facundofernanddez/go-reserve/internal/dto"
	"github.com/facundofernanddez/go-reserve/internal/middleware"
	"github.com/facundofernanddez/go-reserve/internal/service"
	"github.com/labstack/echo/v4"
)

type CourtHandler struct {
	svc service.CourtService
}

func NewCourtHandler(svc service.CourtService) *CourtHandler {
	return &CourtHandler{svc: svc}
}

// RegisterRoutes wires the court directory. Mutations require the complex
// admin JWT; reads are public.
func (h *CourtHandler) RegisterRoutes(e *echo.Echo, adminGuard echo.MiddlewareFunc) {
	courts := e.Group("/api/v1/courts")
	courts.GET("", h.ListCourts)
	courts.GET("/:id", h.GetCourt)
	courts.POST("", h.CreateCourt, adminGuard)
	courts.PATCH("/:id", h.UpdateCourt, adminGuard)
}

func (h *CourtHandler) CreateCourt(c echo.Context) error {
	var req dto.CreateCourtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	complexID, _ := c.Get(middleware.ComplexIDKey).(string)
	court, err := h.svc.CreateCourt(c.Request().Context(), service.CreateCourtInput{
		ComplexID:   complexID,
		Name:        req.Name,
		Sport:       req.Sport,
		Price:       req.Price,
		Description: req.Description,
		Features:    req.Features,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToCourtResponse(court))
}

func (h *CourtHandler) GetCourt(c echo.Context) error {
	court, err := h.svc.GetCourt(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCourtResponse(court))
}

func (h *CourtHandler) ListCourts(c echo.Context) error {
	courts, err := h.svc.ListCourts(c.Request().Context(), c.QueryParam("complex_id"), c.QueryParam("sport"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.CourtResponse, len(courts))
	for i, court := range courts {
		resp[i] = dto.ToCourtResponse(&court)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CourtHandler) UpdateCourt(c echo.Context) error {
	var req dto.UpdateCourtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	complexID, _ := c.Get(middleware.ComplexIDKey).(string)
	court, err := h.svc.UpdateCourt(c.Request().Context(), c.Param("id"), complexID, service.UpdateCourtInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Features:    req.Features,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToCourtResponse(court))
}
