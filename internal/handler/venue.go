package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// VenueHandler exposes CRUD endpoints for event venues.
type VenueHandler struct {
	Venues *repository.VenueRepo
}

// NewVenueHandler constructs a VenueHandler.
func NewVenueHandler(venues *repository.VenueRepo) *VenueHandler {
	if venues == nil {
		panic("nil VenueRepo passed to NewVenueHandler")
	}
	return &VenueHandler{Venues: venues}
}

type venueReq struct {
	Name         string          `json:"name"`
	Capacity     uint32          `json:"capacity"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
}

func (r *venueReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name required"
	}
	if r.Capacity == 0 {
		return "capacity required"
	}
	if r.PricePerHour.IsNegative() {
		return "price_per_hour cannot be negative"
	}
	return ""
}

// Create registers a new venue.
func (h *VenueHandler) Create(c echo.Context) error {
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := &model.Venue{Name: req.Name, Capacity: req.Capacity, PricePerHour: req.PricePerHour}
	if err := h.Venues.Create(ctx, v); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// List returns all venues.
func (h *VenueHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	venues, err := h.Venues.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": venues})
}

// Get returns one venue.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Update rewrites a venue's fields.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := &model.Venue{ID: id, Name: req.Name, Capacity: req.Capacity, PricePerHour: req.PricePerHour}
	if err := h.Venues.Update(ctx, v); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Delete removes a venue unless it still has active bookings.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Venues.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
