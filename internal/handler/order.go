package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hospitality-suite/internal/repository"
	"github.com/iliyamo/hospitality-suite/internal/service"
)

// OrderHandler exposes the restaurant order endpoints. Mutations go
// through the OrderService so the aggregate invariants hold; reads go
// straight to the repository.
type OrderHandler struct {
	Service *service.OrderService
	Orders  *repository.OrderRepo
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(svc *service.OrderService, orders *repository.OrderRepo) *OrderHandler {
	if svc == nil || orders == nil {
		panic("nil dependency passed to NewOrderHandler")
	}
	return &OrderHandler{Service: svc, Orders: orders}
}

type orderItemReq struct {
	MenuItemID      uint64  `json:"menu_item_id"`
	Quantity        int     `json:"quantity"`
	SpecialRequests *string `json:"special_requests"`
}

type createOrderReq struct {
	TableID             uint64         `json:"table_id"`
	CustomerName        *string        `json:"customer_name"`
	Guests              uint32         `json:"number_of_guests"`
	SpecialInstructions *string        `json:"special_instructions"`
	Items               []orderItemReq `json:"items"`
}

type statusReq struct {
	Status string `json:"status"`
}

// Create opens an order on a table, with optional initial items.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_id required"})
	}

	in := service.CreateOrderInput{
		TableID:             req.TableID,
		CustomerName:        req.CustomerName,
		Guests:              req.Guests,
		SpecialInstructions: req.SpecialInstructions,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{
			MenuItemID:      it.MenuItemID,
			Quantity:        it.Quantity,
			SpecialRequests: it.SpecialRequests,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	o, err := h.Service.Create(ctx, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

// List returns order headers, filtered by ?status= and ?table_id=.
func (h *OrderHandler) List(c echo.Context) error {
	var f repository.OrderFilter
	f.Status = strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if v := c.QueryParam("table_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table_id"})
		}
		f.TableID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.List(ctx, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// Get returns one order with its items.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// GetByNumber returns one order looked up by its human-facing number.
func (h *OrderHandler) GetByNumber(c echo.Context) error {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order number"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	o, err := h.Orders.GetByNumber(ctx, number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Stats returns the order dashboard summary.
func (h *OrderHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Orders.Stats(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ChangeStatus moves an order through its lifecycle.
func (h *OrderHandler) ChangeStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	o, err := h.Service.ChangeStatus(ctx, id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// AddItem appends a line item to an open order.
func (h *OrderHandler) AddItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req orderItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	item, err := h.Service.AddItem(ctx, id, service.OrderItemInput{
		MenuItemID:      req.MenuItemID,
		Quantity:        req.Quantity,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem changes a line item's quantity.
func (h *OrderHandler) UpdateItem(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	item, err := h.Service.UpdateItemQuantity(ctx, itemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// RemoveItem deletes a line item from an open order.
func (h *OrderHandler) RemoveItem(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Service.RemoveItem(ctx, itemID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an order and its items.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Service.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
