package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/queue"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// ErrMenuItemUnavailable is returned when a line item references a catalog
// entry whose availability flag is off.
var ErrMenuItemUnavailable = errors.New("menu item is not available")

// ErrOrderClosed is returned when a line item mutation targets an order in
// a terminal status. Closed orders are immutable.
var ErrOrderClosed = errors.New("order is closed")

// EventPublisher pushes order events to the kitchen feed. Publishing
// happens after commit and failures are logged, never surfaced: the order
// is already persisted and the feed is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.OrderEvent) error
}

// OrderService orchestrates the restaurant order aggregate: table
// allocation on create, the status lifecycle, and line item mutations
// with total recomputation. Every operation is one transaction.
type OrderService struct {
	store  Store
	events EventPublisher // may be nil
}

// NewOrderService returns an OrderService over the given store. events
// may be nil to disable the kitchen feed.
func NewOrderService(store Store, events EventPublisher) *OrderService {
	if store == nil {
		panic("nil Store passed to NewOrderService")
	}
	return &OrderService{store: store, events: events}
}

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	MenuItemID      uint64
	Quantity        int
	SpecialRequests *string
}

// CreateOrderInput carries everything needed to open an order.
type CreateOrderInput struct {
	TableID             uint64
	CustomerName        *string
	Guests              uint32
	SpecialInstructions *string
	Items               []OrderItemInput
}

// NewOrderNumber derives a human-readable order number from a UUID.
// Row-count based numbering races under concurrency, so it is not used.
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// txConflicts adapts the transaction to the checker's ConflictFinder,
// dispatching on resource kind.
type txConflicts struct{ tx Tx }

func (f txConflicts) HasActiveAllocation(ctx context.Context, res allocation.Resource, w allocation.Window) (bool, error) {
	if res.Kind == allocation.KindVenue {
		return f.tx.HasActiveBookingForDate(ctx, res.ID, w.Date)
	}
	return f.tx.HasActiveOrderForTable(ctx, res.ID)
}

func tableResource(t *model.Table) allocation.Resource {
	return allocation.Resource{
		ID:           t.ID,
		Kind:         allocation.KindTable,
		Key:          fmt.Sprintf("%d", t.TableNumber),
		Capacity:     t.Capacity,
		OutOfService: t.Status == model.TableOutOfService,
	}
}

// Create opens a new order in PENDING on the requested table. The table
// row is locked first, the allocation is checked, and the header, the
// initial items, the recomputed total and the table status change all
// commit together; any failure leaves no partial aggregate behind.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	var created *model.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		tbl, err := tx.TableForUpdate(ctx, in.TableID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return allocation.ErrResourceNotFound
			}
			return err
		}
		res := tableResource(tbl)
		checker := allocation.NewChecker(txConflicts{tx})
		if err := checker.CheckAndReserve(ctx, &res, allocation.None, in.Guests); err != nil {
			return err
		}

		now := time.Now().UTC()
		o := &model.Order{
			OrderNumber:         NewOrderNumber(),
			TableID:             tbl.ID,
			CustomerName:        in.CustomerName,
			Status:              string(allocation.FlowOrder.Initial()),
			TotalAmount:         decimal.Zero,
			Guests:              in.Guests,
			SpecialInstructions: in.SpecialInstructions,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		for _, it := range in.Items {
			if _, err := insertItemTx(ctx, tx, o.ID, it, now); err != nil {
				return err
			}
		}
		total, err := tx.RecomputeOrderTotal(ctx, o.ID, now)
		if err != nil {
			return err
		}
		o.TotalAmount = total
		if err := tx.SetTableStatus(ctx, tbl.ID, model.TableOccupied); err != nil {
			return err
		}
		items, err := tx.OrderItems(ctx, o.ID)
		if err != nil {
			return err
		}
		o.Items = items
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, queue.OrderEvent{
		Type:        queue.EventOrderPlaced,
		OrderID:     created.ID,
		OrderNumber: created.OrderNumber,
		TableID:     created.TableID,
		Status:      created.Status,
		TotalAmount: created.TotalAmount.StringFixed(2),
		OccurredAt:  created.CreatedAt.Format(time.RFC3339),
	})
	return created, nil
}

// insertItemTx resolves the catalog reference, snapshots its name and
// price onto a new line item and inserts it. The caller recomputes the
// order total afterwards.
func insertItemTx(ctx context.Context, tx Tx, orderID uint64, in OrderItemInput, now time.Time) (*model.OrderItem, error) {
	if err := allocation.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	mi, err := tx.MenuItemByID(ctx, in.MenuItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("menu item %d: %w", in.MenuItemID, repository.ErrNotFound)
		}
		return nil, err
	}
	if !mi.IsAvailable {
		return nil, fmt.Errorf("menu item %d: %w", mi.ID, ErrMenuItemUnavailable)
	}
	qty := uint32(in.Quantity)
	item := &model.OrderItem{
		OrderID:         orderID,
		MenuItemID:      mi.ID,
		MenuItemName:    mi.Name,
		Quantity:        qty,
		UnitPrice:       mi.Price,
		Subtotal:        allocation.Subtotal(mi.Price, qty),
		SpecialRequests: in.SpecialRequests,
		CreatedAt:       now,
	}
	if err := tx.InsertOrderItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddItem appends a line item to an open order and recomputes its total
// in the same transaction.
func (s *OrderService) AddItem(ctx context.Context, orderID uint64, in OrderItemInput) (*model.OrderItem, error) {
	var added *model.OrderItem
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		o, err := tx.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if allocation.FlowOrder.Terminal(allocation.Status(o.Status)) {
			return ErrOrderClosed
		}
		now := time.Now().UTC()
		item, err := insertItemTx(ctx, tx, o.ID, in, now)
		if err != nil {
			return err
		}
		if _, err := tx.RecomputeOrderTotal(ctx, o.ID, now); err != nil {
			return err
		}
		added = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// UpdateItemQuantity changes a line item's quantity. The subtotal is
// recomputed from the snapshotted unit price, never from the live
// catalog, so the customer keeps the quoted price.
func (s *OrderService) UpdateItemQuantity(ctx context.Context, itemID uint64, quantity int) (*model.OrderItem, error) {
	if err := allocation.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	var updated *model.OrderItem
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		item, err := tx.OrderItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		o, err := tx.OrderByID(ctx, item.OrderID)
		if err != nil {
			return err
		}
		if allocation.FlowOrder.Terminal(allocation.Status(o.Status)) {
			return ErrOrderClosed
		}
		qty := uint32(quantity)
		subtotal := allocation.Subtotal(item.UnitPrice, qty)
		if err := tx.UpdateOrderItem(ctx, item.ID, qty, subtotal); err != nil {
			return err
		}
		if _, err := tx.RecomputeOrderTotal(ctx, o.ID, time.Now().UTC()); err != nil {
			return err
		}
		item.Quantity = qty
		item.Subtotal = subtotal
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveItem deletes a line item and recomputes the owning order's total.
func (s *OrderService) RemoveItem(ctx context.Context, itemID uint64) error {
	return s.store.WithinTx(ctx, func(tx Tx) error {
		item, err := tx.OrderItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		o, err := tx.OrderByID(ctx, item.OrderID)
		if err != nil {
			return err
		}
		if allocation.FlowOrder.Terminal(allocation.Status(o.Status)) {
			return ErrOrderClosed
		}
		if err := tx.DeleteOrderItem(ctx, item.ID); err != nil {
			return err
		}
		_, err = tx.RecomputeOrderTotal(ctx, o.ID, time.Now().UTC())
		return err
	})
}

// ChangeStatus moves the order through its lifecycle. An illegal request
// fails without touching the row. Reaching a terminal status frees the
// table for the next party.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID uint64, requested string) (*model.Order, error) {
	st, ok := allocation.ParseStatus(strings.ToUpper(strings.TrimSpace(requested)))
	if !ok {
		return nil, allocation.ErrIllegalTransition
	}
	var updated *model.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		o, err := tx.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := allocation.FlowOrder.Transition(allocation.Status(o.Status), st); err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := tx.SetOrderStatus(ctx, o.ID, string(st), now); err != nil {
			return err
		}
		if allocation.FlowOrder.Terminal(st) {
			if err := tx.SetTableStatus(ctx, o.TableID, model.TableAvailable); err != nil {
				return err
			}
		}
		o.Status = string(st)
		o.UpdatedAt = now
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, queue.OrderEvent{
		Type:        queue.EventOrderStatusChanged,
		OrderID:     updated.ID,
		OrderNumber: updated.OrderNumber,
		TableID:     updated.TableID,
		Status:      updated.Status,
		TotalAmount: updated.TotalAmount.StringFixed(2),
		OccurredAt:  updated.UpdatedAt.Format(time.RFC3339),
	})
	return updated, nil
}

// Delete removes the order and all of its line items in one transaction.
// If the order was still holding its table, the table is freed.
func (s *OrderService) Delete(ctx context.Context, orderID uint64) error {
	return s.store.WithinTx(ctx, func(tx Tx) error {
		o, err := tx.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := tx.DeleteOrderItems(ctx, o.ID); err != nil {
			return err
		}
		if err := tx.DeleteOrder(ctx, o.ID); err != nil {
			return err
		}
		if !allocation.FlowOrder.Terminal(allocation.Status(o.Status)) {
			return tx.SetTableStatus(ctx, o.TableID, model.TableAvailable)
		}
		return nil
	})
}

func (s *OrderService) publish(ctx context.Context, ev queue.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("order events: publish %s for order %d failed: %v", ev.Type, ev.OrderID, err)
	}
}
