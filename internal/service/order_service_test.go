package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/queue"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []queue.OrderEvent
}

func (p *capturePublisher) Publish(_ context.Context, ev queue.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) all() []queue.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.OrderEvent(nil), p.events...)
}

func TestCreateOrderComputesTotal(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(5, 4, model.TableAvailable)
	pasta := store.addMenuItem("Pasta", "850.00", true)
	salad := store.addMenuItem("Salad", "350.00", true)
	pub := &capturePublisher{}
	svc := NewOrderService(store, pub)

	o, err := svc.Create(context.Background(), CreateOrderInput{
		TableID: tbl.ID,
		Guests:  2,
		Items: []OrderItemInput{
			{MenuItemID: pasta.ID, Quantity: 2},
			{MenuItemID: salad.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, string(allocation.StatusPending), o.Status)
	assert.True(t, dec("2050.00").Equal(o.TotalAmount), "got total %s", o.TotalAmount)
	assert.Len(t, o.Items, 2)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, o.OrderNumber)
	assert.Equal(t, model.TableOccupied, store.table(tbl.ID).Status)

	evs := pub.all()
	require.Len(t, evs, 1)
	assert.Equal(t, queue.EventOrderPlaced, evs[0].Type)
	assert.Equal(t, "2050.00", evs[0].TotalAmount)
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	pasta := store.addMenuItem("Pasta", "850.00", true)
	svc := NewOrderService(store, nil)

	o, err := svc.Create(context.Background(), CreateOrderInput{
		TableID: tbl.ID,
		Items:   []OrderItemInput{{MenuItemID: pasta.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Reprice the catalog entry, then bump the quantity. The line must
	// keep the price it was sold at.
	store.mu.Lock()
	store.st.menuItems[pasta.ID].Price = dec("999.00")
	store.mu.Unlock()

	item, err := svc.UpdateItemQuantity(context.Background(), o.Items[0].ID, 3)
	require.NoError(t, err)
	assert.True(t, dec("850.00").Equal(item.UnitPrice))
	assert.True(t, dec("2550.00").Equal(item.Subtotal))

	got, ok := store.order(o.ID)
	require.True(t, ok)
	assert.True(t, dec("2550.00").Equal(got.TotalAmount))
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	pasta := store.addMenuItem("Pasta", "850.00", true)
	offMenu := store.addMenuItem("Seasonal Special", "1200.00", false)
	svc := NewOrderService(store, nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		TableID: tbl.ID,
		Items: []OrderItemInput{
			{MenuItemID: pasta.ID, Quantity: 1},
			{MenuItemID: offMenu.ID, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrMenuItemUnavailable)

	// Nothing persisted: no order, no orphaned items, table untouched.
	assert.Equal(t, 0, store.orderCount())
	assert.Empty(t, store.itemsOf(1))
	assert.Equal(t, model.TableAvailable, store.table(tbl.ID).Status)
}

func TestCreateOrderUnknownMenuItemRollsBack(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	svc := NewOrderService(store, nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		TableID: tbl.ID,
		Items:   []OrderItemInput{{MenuItemID: 999, Quantity: 1}},
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, store.orderCount())
	assert.Equal(t, model.TableAvailable, store.table(tbl.ID).Status)
}

func TestCreateOrderAllocationChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown table", func(t *testing.T) {
		svc := NewOrderService(newMemStore(), nil)
		_, err := svc.Create(ctx, CreateOrderInput{TableID: 42})
		assert.ErrorIs(t, err, allocation.ErrResourceNotFound)
	})

	t.Run("party larger than table", func(t *testing.T) {
		store := newMemStore()
		tbl := store.addTable(1, 4, model.TableAvailable)
		svc := NewOrderService(store, nil)
		_, err := svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 6})
		assert.ErrorIs(t, err, allocation.ErrCapacityExceeded)
	})

	t.Run("out of service table", func(t *testing.T) {
		store := newMemStore()
		tbl := store.addTable(1, 4, model.TableOutOfService)
		svc := NewOrderService(store, nil)
		_, err := svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 2})
		assert.ErrorIs(t, err, allocation.ErrResourceUnavailable)
	})

	t.Run("table already holds an open order", func(t *testing.T) {
		store := newMemStore()
		tbl := store.addTable(1, 4, model.TableAvailable)
		svc := NewOrderService(store, nil)
		_, err := svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 2})
		require.NoError(t, err)
		_, err = svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 2})
		assert.ErrorIs(t, err, allocation.ErrSlotAlreadyBooked)
	})

	t.Run("zero quantity item", func(t *testing.T) {
		store := newMemStore()
		tbl := store.addTable(1, 4, model.TableAvailable)
		mi := store.addMenuItem("Pasta", "850.00", true)
		svc := NewOrderService(store, nil)
		_, err := svc.Create(ctx, CreateOrderInput{
			TableID: tbl.ID,
			Items:   []OrderItemInput{{MenuItemID: mi.ID, Quantity: 0}},
		})
		assert.ErrorIs(t, err, allocation.ErrInvalidQuantity)
		assert.Equal(t, 0, store.orderCount())
		assert.Equal(t, model.TableAvailable, store.table(tbl.ID).Status)
	})
}

func TestItemMutationsRecomputeTotal(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	pasta := store.addMenuItem("Pasta", "850.00", true)
	salad := store.addMenuItem("Salad", "350.00", true)
	steak := store.addMenuItem("Steak", "1100.00", true)
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateOrderInput{
		TableID: tbl.ID,
		Items: []OrderItemInput{
			{MenuItemID: pasta.ID, Quantity: 2},
			{MenuItemID: salad.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	added, err := svc.AddItem(ctx, o.ID, OrderItemInput{MenuItemID: steak.ID, Quantity: 1})
	require.NoError(t, err)
	got, _ := store.order(o.ID)
	assert.True(t, dec("3150.00").Equal(got.TotalAmount), "after add: %s", got.TotalAmount)

	require.NoError(t, svc.RemoveItem(ctx, added.ID))
	got, _ = store.order(o.ID)
	assert.True(t, dec("2050.00").Equal(got.TotalAmount), "after remove: %s", got.TotalAmount)

	var pastaLine model.OrderItem
	for _, it := range store.itemsOf(o.ID) {
		if it.MenuItemID == pasta.ID {
			pastaLine = it
		}
	}
	_, err = svc.UpdateItemQuantity(ctx, pastaLine.ID, 3)
	require.NoError(t, err)
	got, _ = store.order(o.ID)
	assert.True(t, dec("2900.00").Equal(got.TotalAmount), "after update: %s", got.TotalAmount)
}

func TestItemMutationsRejectedOnClosedOrder(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	pasta := store.addMenuItem("Pasta", "850.00", true)
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateOrderInput{
		TableID: tbl.ID,
		Items:   []OrderItemInput{{MenuItemID: pasta.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, o.ID, "CANCELLED")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, o.ID, OrderItemInput{MenuItemID: pasta.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrOrderClosed)
	_, err = svc.UpdateItemQuantity(ctx, o.Items[0].ID, 5)
	assert.ErrorIs(t, err, ErrOrderClosed)
	assert.ErrorIs(t, svc.RemoveItem(ctx, o.Items[0].ID), ErrOrderClosed)
}

func TestOrderLifecycle(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	pub := &capturePublisher{}
	svc := NewOrderService(store, pub)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 2})
	require.NoError(t, err)

	for _, next := range []string{"CONFIRMED", "PREPARING", "READY", "SERVED"} {
		o, err = svc.ChangeStatus(ctx, o.ID, next)
		require.NoError(t, err, "to %s", next)
		assert.Equal(t, next, o.Status)
	}

	// SERVED frees the table and absorbs every further request.
	assert.Equal(t, model.TableAvailable, store.table(tbl.ID).Status)
	_, err = svc.ChangeStatus(ctx, o.ID, "CANCELLED")
	assert.ErrorIs(t, err, allocation.ErrIllegalTransition)

	// One placed event plus four status changes.
	assert.Len(t, pub.all(), 5)
}

func TestOrderStatusRejectsSkipsAndGarbage(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateOrderInput{TableID: tbl.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, o.ID, "READY")
	assert.ErrorIs(t, err, allocation.ErrIllegalTransition)
	_, err = svc.ChangeStatus(ctx, o.ID, "SHIPPED")
	assert.ErrorIs(t, err, allocation.ErrIllegalTransition)

	// A failed request leaves the row untouched.
	got, _ := store.order(o.ID)
	assert.Equal(t, string(allocation.StatusPending), got.Status)
}

func TestCancelFreesTable(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, model.TableOccupied, store.table(tbl.ID).Status)

	_, err = svc.ChangeStatus(ctx, o.ID, "CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, model.TableAvailable, store.table(tbl.ID).Status)

	// The table accepts a new order again.
	_, err = svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 2})
	assert.NoError(t, err)
}

func TestDeleteOrderCascades(t *testing.T) {
	store := newMemStore()
	t1 := store.addTable(1, 4, model.TableAvailable)
	t2 := store.addTable(2, 4, model.TableAvailable)
	pasta := store.addMenuItem("Pasta", "850.00", true)
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateOrderInput{
		TableID: t1.ID,
		Items:   []OrderItemInput{{MenuItemID: pasta.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateOrderInput{
		TableID: t2.ID,
		Items:   []OrderItemInput{{MenuItemID: pasta.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))

	_, ok := store.order(a.ID)
	assert.False(t, ok)
	assert.Empty(t, store.itemsOf(a.ID))
	assert.Equal(t, model.TableAvailable, store.table(t1.ID).Status)

	// The sibling order is untouched.
	got, ok := store.order(b.ID)
	require.True(t, ok)
	assert.True(t, dec("850.00").Equal(got.TotalAmount))
	assert.Len(t, store.itemsOf(b.ID), 1)
	assert.Equal(t, model.TableOccupied, store.table(t2.ID).Status)
}

func TestConcurrentAddItemBothLand(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 4, model.TableAvailable)
	pasta := store.addMenuItem("Pasta", "850.00", true)
	salad := store.addMenuItem("Salad", "350.00", true)
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateOrderInput{TableID: tbl.ID})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, mi := range []uint64{pasta.ID, salad.ID} {
		wg.Add(1)
		go func(i int, menuItemID uint64) {
			defer wg.Done()
			_, errs[i] = svc.AddItem(ctx, o.ID, OrderItemInput{MenuItemID: menuItemID, Quantity: 1})
		}(i, mi)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	got, _ := store.order(o.ID)
	assert.True(t, dec("1200.00").Equal(got.TotalAmount), "got %s", got.TotalAmount)
	assert.Len(t, store.itemsOf(o.ID), 2)
}

func TestConcurrentCreateSingleWinnerPerTable(t *testing.T) {
	store := newMemStore()
	tbl := store.addTable(1, 8, model.TableAvailable)
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, CreateOrderInput{TableID: tbl.ID, Guests: 2})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, allocation.ErrSlotAlreadyBooked)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, store.orderCount())
}
