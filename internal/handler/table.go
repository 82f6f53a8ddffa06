package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// TableHandler exposes CRUD endpoints for restaurant tables.
type TableHandler struct {
	Tables *repository.TableRepo
}

// NewTableHandler constructs a TableHandler.
func NewTableHandler(tables *repository.TableRepo) *TableHandler {
	if tables == nil {
		panic("nil TableRepo passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables}
}

type tableReq struct {
	TableNumber uint32  `json:"table_number"`
	Capacity    uint32  `json:"capacity"`
	Status      string  `json:"status"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

func validTableStatus(s string) bool {
	switch s {
	case model.TableAvailable, model.TableOccupied, model.TableReserved, model.TableOutOfService:
		return true
	}
	return false
}

// Create registers a new table. Status defaults to AVAILABLE.
func (h *TableHandler) Create(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TableNumber == 0 || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_number and capacity required"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.TableAvailable
	}
	if !validTableStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Status:      status,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := h.Tables.Create(ctx, t); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// List returns tables, filtered by ?status=, ?location= and
// ?min_capacity=.
func (h *TableHandler) List(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !validTableStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table status"})
	}
	var minCapacity uint32
	if raw := c.QueryParam("min_capacity"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_capacity"})
		}
		minCapacity = uint32(n)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tables, err := h.Tables.List(ctx, status,
		strings.TrimSpace(c.QueryParam("location")), minCapacity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// Get returns one table.
func (h *TableHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Update rewrites a table's fields.
func (h *TableHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TableNumber == 0 || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_number and capacity required"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !validTableStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.Table{
		ID:          id,
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Status:      status,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := h.Tables.Update(ctx, t); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// SetStatus changes just the status, e.g. marking a table
// OUT_OF_SERVICE without retyping the rest of the record.
func (h *TableHandler) SetStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !validTableStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tables.SetStatus(ctx, id, status); err != nil {
		return writeError(c, err)
	}
	t, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a table unless it still has open orders.
func (h *TableHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tables.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
