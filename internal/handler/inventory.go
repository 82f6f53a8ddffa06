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

// InventoryHandler exposes CRUD and stock adjustment endpoints for
// inventory items.
type InventoryHandler struct {
	Inventory *repository.InventoryRepo
}

// NewInventoryHandler constructs an InventoryHandler.
func NewInventoryHandler(inv *repository.InventoryRepo) *InventoryHandler {
	if inv == nil {
		panic("nil InventoryRepo passed to NewInventoryHandler")
	}
	return &InventoryHandler{Inventory: inv}
}

type inventoryReq struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Quantity     int64  `json:"quantity"`
	Unit         string `json:"unit"`
	ReorderLevel int64  `json:"reorder_level"`
}

func (r *inventoryReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Unit = strings.TrimSpace(r.Unit)
	if r.Name == "" {
		return "name required"
	}
	if r.Category == "" {
		return "category required"
	}
	if r.Unit == "" {
		return "unit required"
	}
	if r.Quantity < 0 || r.ReorderLevel < 0 {
		return "quantity and reorder_level cannot be negative"
	}
	return ""
}

// Create registers a new inventory item.
func (h *InventoryHandler) Create(c echo.Context) error {
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it := &model.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
	}
	if err := h.Inventory.Create(ctx, it); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// List returns inventory items, filtered by ?category= and
// ?low_stock=true.
func (h *InventoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Inventory.List(ctx,
		strings.TrimSpace(c.QueryParam("category")),
		c.QueryParam("low_stock") == "true")
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"inventory_items": items})
}

// Get returns one inventory item.
func (h *InventoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Update rewrites an item's descriptive fields. Stock levels change
// through Adjust only.
func (h *InventoryHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it := &model.InventoryItem{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
	}
	if err := h.Inventory.Update(ctx, it); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Adjust applies a signed delta to an item's stock count.
func (h *InventoryHandler) Adjust(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Delta == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delta must be non-zero"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Inventory.Adjust(ctx, id, req.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Delete removes an inventory item.
func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Inventory.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
