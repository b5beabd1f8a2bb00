package handler

import (
	"net/http"

	"github.com/facundofernanddez/go-reserve/internal/dto"
	"github.com/facundofernanddez/go-reserve/internal/service"
	"github.com/labstack/echo/v4"
)

type ComplexHandler struct {
	svc service.ComplexService
}

func NewComplexHandler(svc service.ComplexService) *ComplexHandler {
	return &ComplexHandler{svc: svc}
}

func (h *ComplexHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/complexes", h.ListComplexes)

	auth := e.Group("/api/v1/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
}

func (h *ComplexHandler) Register(c echo.Context) error {
	var req dto.RegisterComplexRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	complex, err := h.svc.Register(c.Request().Context(), service.RegisterComplexInput{
		Name:       req.Name,
		Location:   req.Location,
		AdminEmail: req.AdminEmail,
		Password:   req.Password,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToComplexResponse(complex))
}

func (h *ComplexHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, complex, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Token:   token,
		Complex: dto.ToComplexResponse(complex),
	})
}

func (h *ComplexHandler) ListComplexes(c echo.Context) error {
	complexes, err := h.svc.ListComplexes(c.Request().Context(), c.QueryParam("location"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ComplexResponse, len(complexes))
	for i, cx := range complexes {
		resp[i] = dto.ToComplexResponse(&cx)
	}
	return c.JSON(http.StatusOK, resp)
}
