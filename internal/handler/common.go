// Package handler defines the HTTP handlers for the REST API. Handlers
// bind and validate request bodies, delegate to repositories and services
// and map domain errors onto HTTP statuses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/repository"
	"github.com/iliyamo/hospitality-suite/internal/service"
)

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// writeError maps domain errors onto HTTP responses. Anything not
// recognized becomes a 500 with a generic message; the error text of
// known failures is safe to return to clients.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, allocation.ErrResourceNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, allocation.ErrCapacityExceeded),
		errors.Is(err, allocation.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrStockUnderflow),
		errors.Is(err, allocation.ErrSlotAlreadyBooked),
		errors.Is(err, allocation.ErrResourceUnavailable),
		errors.Is(err, allocation.ErrIllegalTransition),
		errors.Is(err, service.ErrMenuItemUnavailable),
		errors.Is(err, service.ErrOrderClosed):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
