package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// GuestHandler exposes CRUD endpoints for the guest registry.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(guests *repository.GuestRepo) *GuestHandler {
	if guests == nil {
		panic("nil GuestRepo passed to NewGuestHandler")
	}
	return &GuestHandler{Guests: guests}
}

type guestReq struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (r *guestReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return "name required"
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return "valid email required"
	}
	return ""
}

// Create registers a new guest.
func (h *GuestHandler) Create(c echo.Context) error {
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := &model.Guest{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.Guests.Create(ctx, g); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

// List returns guests, optionally filtered by ?search= on name or email.
func (h *GuestHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	guests, err := h.Guests.List(ctx, strings.TrimSpace(c.QueryParam("search")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"guests": guests})
}

// Get returns one guest.
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// Update rewrites a guest's fields.
func (h *GuestHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := &model.Guest{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.Guests.Update(ctx, g); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// Delete removes a guest.
func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Guests.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
