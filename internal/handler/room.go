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

// RoomHandler exposes CRUD endpoints for the hotel room catalog.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil RoomRepo passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	RoomNumber    string          `json:"room_number"`
	Type          string          `json:"type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Status        string          `json:"status"`
}

func (r *roomReq) validate() string {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	r.Type = strings.TrimSpace(r.Type)
	if r.RoomNumber == "" {
		return "room_number required"
	}
	if r.Type == "" {
		return "type required"
	}
	if r.PricePerNight.IsNegative() {
		return "price_per_night cannot be negative"
	}
	return ""
}

// Create registers a new room. Status defaults to AVAILABLE.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = "AVAILABLE"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm := &model.Room{
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		PricePerNight: req.PricePerNight,
		Status:        status,
	}
	if err := h.Rooms.Create(ctx, rm); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rm)
}

// List returns rooms, filtered by ?type= and ?status=.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx,
		strings.TrimSpace(c.QueryParam("type")),
		strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// Get returns one room.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rm)
}

// Update rewrites a room's fields.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = "AVAILABLE"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm := &model.Room{
		ID:            id,
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		PricePerNight: req.PricePerNight,
		Status:        status,
	}
	if err := h.Rooms.Update(ctx, rm); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rm)
}

// Delete removes a room.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
