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

// MenuItemHandler exposes CRUD endpoints for the menu catalog.
type MenuItemHandler struct {
	Menu *repository.MenuItemRepo
}

// NewMenuItemHandler constructs a MenuItemHandler.
func NewMenuItemHandler(menu *repository.MenuItemRepo) *MenuItemHandler {
	if menu == nil {
		panic("nil MenuItemRepo passed to NewMenuItemHandler")
	}
	return &MenuItemHandler{Menu: menu}
}

type menuItemReq struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsAvailable *bool           `json:"is_available"`
	PrepMinutes *uint32         `json:"preparation_time_minutes"`
}

func (r *menuItemReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	if r.Name == "" {
		return "name required"
	}
	if r.Category == "" {
		return "category required"
	}
	if r.Price.IsNegative() {
		return "price cannot be negative"
	}
	return ""
}

// Create adds a catalog entry. Items default to available.
func (h *MenuItemHandler) Create(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	mi := &model.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: available,
		PrepMinutes: req.PrepMinutes,
	}
	if err := h.Menu.Create(ctx, mi); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, mi)
}

// List returns catalog entries, filtered by ?category= and ?available=true.
func (h *MenuItemHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Menu.List(ctx,
		strings.TrimSpace(c.QueryParam("category")),
		c.QueryParam("available") == "true")
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"menu_items": items})
}

// Get returns one catalog entry.
func (h *MenuItemHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	mi, err := h.Menu.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mi)
}

// Update rewrites a catalog entry. Existing order lines keep their
// snapshotted name and price.
func (h *MenuItemHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	mi := &model.MenuItem{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: available,
		PrepMinutes: req.PrepMinutes,
	}
	if err := h.Menu.Update(ctx, mi); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mi)
}

// SetAvailability flips whether an item can be ordered, the one field
// the kitchen toggles during service.
func (h *MenuItemHandler) SetAvailability(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		IsAvailable *bool `json:"is_available"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.IsAvailable == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_available required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Menu.SetAvailability(ctx, id, *req.IsAvailable); err != nil {
		return writeError(c, err)
	}
	mi, err := h.Menu.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mi)
}

// Delete removes a catalog entry unless historical orders reference it.
func (h *MenuItemHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Menu.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
