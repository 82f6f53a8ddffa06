package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// memStore is an in-memory Store used by the service tests. WithinTx
// takes a global lock, clones the whole state, runs fn against the clone
// and swaps it in only on success. That gives real rollback semantics and
// serializes transactions, which is what the MySQL store guarantees for
// the rows the orchestrators lock.
type memStore struct {
	mu sync.Mutex
	st memState
}

type memState struct {
	tables    map[uint64]*model.Table
	venues    map[uint64]*model.Venue
	menuItems map[uint64]*model.MenuItem
	orders    map[uint64]*model.Order
	items     map[uint64]*model.OrderItem
	bookings  map[uint64]*model.Booking
	nextID    uint64
}

func newMemStore() *memStore {
	return &memStore{st: memState{
		tables:    map[uint64]*model.Table{},
		venues:    map[uint64]*model.Venue{},
		menuItems: map[uint64]*model.MenuItem{},
		orders:    map[uint64]*model.Order{},
		items:     map[uint64]*model.OrderItem{},
		bookings:  map[uint64]*model.Booking{},
		nextID:    1,
	}}
}

func cloneMap[V any](src map[uint64]*V) map[uint64]*V {
	dst := make(map[uint64]*V, len(src))
	for k, v := range src {
		c := *v
		dst[k] = &c
	}
	return dst
}

func (s memState) clone() memState {
	return memState{
		tables:    cloneMap(s.tables),
		venues:    cloneMap(s.venues),
		menuItems: cloneMap(s.menuItems),
		orders:    cloneMap(s.orders),
		items:     cloneMap(s.items),
		bookings:  cloneMap(s.bookings),
		nextID:    s.nextID,
	}
}

func (s *memStore) WithinTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(&memTx{st: &work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// seed helpers run outside any transaction.

func (s *memStore) addTable(number, capacity uint32, status string) *model.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &model.Table{ID: s.st.nextID, TableNumber: number, Capacity: capacity, Status: status}
	s.st.nextID++
	s.st.tables[t.ID] = t
	return t
}

func (s *memStore) addVenue(name string, capacity uint32) *model.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := &model.Venue{ID: s.st.nextID, Name: name, Capacity: capacity, PricePerHour: dec("500.00")}
	s.st.nextID++
	s.st.venues[v.ID] = v
	return v
}

func (s *memStore) addMenuItem(name, price string, available bool) *model.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	mi := &model.MenuItem{ID: s.st.nextID, Name: name, Price: dec(price), Category: "main", IsAvailable: available}
	s.st.nextID++
	s.st.menuItems[mi.ID] = mi
	return mi
}

func (s *memStore) table(id uint64) model.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.st.tables[id]
}

func (s *memStore) order(id uint64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return *o, true
}

func (s *memStore) itemsOf(orderID uint64) []model.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.OrderItem
	for _, it := range s.st.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	return out
}

func (s *memStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.bookings)
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orders)
}

// memTx implements the Tx port against one cloned state.
type memTx struct{ st *memState }

func (t *memTx) id() uint64 {
	id := t.st.nextID
	t.st.nextID++
	return id
}

func notFound(what string, id uint64) error {
	return fmt.Errorf("%s %d: %w", what, id, repository.ErrNotFound)
}

func (t *memTx) TableForUpdate(_ context.Context, id uint64) (*model.Table, error) {
	tbl, ok := t.st.tables[id]
	if !ok {
		return nil, notFound("table", id)
	}
	c := *tbl
	return &c, nil
}

func (t *memTx) SetTableStatus(_ context.Context, id uint64, status string) error {
	tbl, ok := t.st.tables[id]
	if !ok {
		return notFound("table", id)
	}
	tbl.Status = status
	return nil
}

func (t *memTx) VenueForUpdate(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := t.st.venues[id]
	if !ok {
		return nil, notFound("venue", id)
	}
	c := *v
	return &c, nil
}

func (t *memTx) MenuItemByID(_ context.Context, id uint64) (*model.MenuItem, error) {
	mi, ok := t.st.menuItems[id]
	if !ok {
		return nil, notFound("menu item", id)
	}
	c := *mi
	return &c, nil
}

func (t *memTx) HasActiveOrderForTable(_ context.Context, tableID uint64) (bool, error) {
	for _, o := range t.st.orders {
		if o.TableID == tableID && !allocation.FlowOrder.Terminal(allocation.Status(o.Status)) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertOrder(_ context.Context, o *model.Order) error {
	o.ID = t.id()
	c := *o
	c.Items = nil
	t.st.orders[c.ID] = &c
	return nil
}

func (t *memTx) OrderByID(_ context.Context, id uint64) (*model.Order, error) {
	o, ok := t.st.orders[id]
	if !ok {
		return nil, notFound("order", id)
	}
	c := *o
	return &c, nil
}

func (t *memTx) OrderItems(_ context.Context, orderID uint64) ([]model.OrderItem, error) {
	var out []model.OrderItem
	for _, it := range t.st.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (t *memTx) OrderItemByID(_ context.Context, id uint64) (*model.OrderItem, error) {
	it, ok := t.st.items[id]
	if !ok {
		return nil, notFound("order item", id)
	}
	c := *it
	return &c, nil
}

func (t *memTx) InsertOrderItem(_ context.Context, it *model.OrderItem) error {
	it.ID = t.id()
	c := *it
	t.st.items[c.ID] = &c
	return nil
}

func (t *memTx) UpdateOrderItem(_ context.Context, id uint64, quantity uint32, subtotal decimal.Decimal) error {
	it, ok := t.st.items[id]
	if !ok {
		return notFound("order item", id)
	}
	it.Quantity = quantity
	it.Subtotal = subtotal
	return nil
}

func (t *memTx) DeleteOrderItem(_ context.Context, id uint64) error {
	if _, ok := t.st.items[id]; !ok {
		return notFound("order item", id)
	}
	delete(t.st.items, id)
	return nil
}

func (t *memTx) DeleteOrderItems(_ context.Context, orderID uint64) error {
	for id, it := range t.st.items {
		if it.OrderID == orderID {
			delete(t.st.items, id)
		}
	}
	return nil
}

func (t *memTx) SetOrderStatus(_ context.Context, id uint64, status string, at time.Time) error {
	o, ok := t.st.orders[id]
	if !ok {
		return notFound("order", id)
	}
	o.Status = status
	o.UpdatedAt = at
	return nil
}

func (t *memTx) DeleteOrder(_ context.Context, id uint64) error {
	if _, ok := t.st.orders[id]; !ok {
		return notFound("order", id)
	}
	delete(t.st.orders, id)
	return nil
}

func (t *memTx) RecomputeOrderTotal(_ context.Context, orderID uint64, at time.Time) (decimal.Decimal, error) {
	o, ok := t.st.orders[orderID]
	if !ok {
		return decimal.Zero, notFound("order", orderID)
	}
	var subtotals []decimal.Decimal
	for _, it := range t.st.items {
		if it.OrderID == orderID {
			subtotals = append(subtotals, it.Subtotal)
		}
	}
	o.TotalAmount = allocation.Total(subtotals...)
	o.UpdatedAt = at
	return o.TotalAmount, nil
}

func (t *memTx) HasActiveBookingForDate(_ context.Context, venueID uint64, date string) (bool, error) {
	for _, b := range t.st.bookings {
		if b.VenueID == venueID && b.EventDate == date && !allocation.FlowBooking.Terminal(allocation.Status(b.Status)) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertBooking(_ context.Context, b *model.Booking) error {
	b.ID = t.id()
	c := *b
	t.st.bookings[c.ID] = &c
	return nil
}

func (t *memTx) BookingByID(_ context.Context, id uint64) (*model.Booking, error) {
	b, ok := t.st.bookings[id]
	if !ok {
		return nil, notFound("booking", id)
	}
	c := *b
	return &c, nil
}

func (t *memTx) SetBookingStatus(_ context.Context, id uint64, status string, at time.Time) error {
	b, ok := t.st.bookings[id]
	if !ok {
		return notFound("booking", id)
	}
	b.Status = status
	b.UpdatedAt = at
	return nil
}

func (t *memTx) DeleteBooking(_ context.Context, id uint64) error {
	if _, ok := t.st.bookings[id]; !ok {
		return notFound("booking", id)
	}
	delete(t.st.bookings, id)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
