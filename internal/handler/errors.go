package handler

import (
	"errors"
	"net/http"

	"github.com/facundofernanddez/go-reserve/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps the service error taxonomy onto HTTP status codes.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSlotConflict),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrCourtUnavailable),
		errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrCourtNotFound),
		errors.Is(err, service.ErrComplexNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
