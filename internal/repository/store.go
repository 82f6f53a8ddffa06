package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
)

// Store opens transactions against the persisted state.
type Store interface {
	// WithinTx runs fn inside one transaction. When fn returns an error
	// the transaction is rolled back and the error is returned; otherwise
	// the transaction commits. Writes made through the Tx are invisible
	// to other transactions until commit.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of storage operations the orchestrators need inside a
// transaction. Lookups return ErrNotFound (wrapped) when the row is
// absent. The ForUpdate lookups lock the row for the remainder of the
// transaction: they are the serialization point that makes the
// check-then-create allocation sequence atomic.
type Tx interface {
	// Resource registry
	TableForUpdate(ctx context.Context, id uint64) (*model.Table, error)
	SetTableStatus(ctx context.Context, id uint64, status string) error
	VenueForUpdate(ctx context.Context, id uint64) (*model.Venue, error)

	// Catalog
	MenuItemByID(ctx context.Context, id uint64) (*model.MenuItem, error)

	// Orders
	HasActiveOrderForTable(ctx context.Context, tableID uint64) (bool, error)
	InsertOrder(ctx context.Context, o *model.Order) error
	OrderByID(ctx context.Context, id uint64) (*model.Order, error)
	OrderItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error)
	OrderItemByID(ctx context.Context, id uint64) (*model.OrderItem, error)
	InsertOrderItem(ctx context.Context, it *model.OrderItem) error
	UpdateOrderItem(ctx context.Context, id uint64, quantity uint32, subtotal decimal.Decimal) error
	DeleteOrderItem(ctx context.Context, id uint64) error
	DeleteOrderItems(ctx context.Context, orderID uint64) error
	SetOrderStatus(ctx context.Context, id uint64, status string, at time.Time) error
	DeleteOrder(ctx context.Context, id uint64) error

	// RecomputeOrderTotal rewrites the order's total_amount as the sum of
	// its live items' subtotals and stamps updated_at. It is the only
	// code path that writes total_amount.
	RecomputeOrderTotal(ctx context.Context, orderID uint64, at time.Time) (decimal.Decimal, error)

	// Bookings
	HasActiveBookingForDate(ctx context.Context, venueID uint64, date string) (bool, error)
	InsertBooking(ctx context.Context, b *model.Booking) error
	BookingByID(ctx context.Context, id uint64) (*model.Booking, error)
	SetBookingStatus(ctx context.Context, id uint64, status string, at time.Time) error
	DeleteBooking(ctx context.Context, id uint64) error
}

// SQLStore implements Store over MySQL.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns a SQLStore bound to the given database.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// WithinTx begins a transaction, runs fn against it and commits on
// success. The deferred rollback is a no-op once the commit succeeds.
func (s *SQLStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&sqlTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

// sqlTx implements Tx over one *sql.Tx.
type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) TableForUpdate(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT id, table_number, capacity, status, location, description, created_at, updated_at
	           FROM restaurant_tables WHERE id = ? FOR UPDATE`
	var tbl model.Table
	var location, description sql.NullString
	err := t.tx.QueryRowContext(ctx, q, id).Scan(
		&tbl.ID, &tbl.TableNumber, &tbl.Capacity, &tbl.Status,
		&location, &description, &tbl.CreatedAt, &tbl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("table %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if location.Valid {
		tbl.Location = &location.String
	}
	if description.Valid {
		tbl.Description = &description.String
	}
	return &tbl, nil
}

func (t *sqlTx) SetTableStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE restaurant_tables SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, status, id)
	return err
}

func (t *sqlTx) VenueForUpdate(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT id, name, capacity, price_per_hour, created_at, updated_at
	           FROM venues WHERE id = ? FOR UPDATE`
	var v model.Venue
	err := t.tx.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Capacity, &v.PricePerHour, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("venue %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &v, nil
}

func (t *sqlTx) MenuItemByID(ctx context.Context, id uint64) (*model.MenuItem, error) {
	const q = `SELECT id, name, description, price, category, is_available, preparation_time_minutes, created_at, updated_at
	           FROM menu_items WHERE id = ?`
	mi, err := scanMenuItem(t.tx.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return mi, nil
}

func (t *sqlTx) HasActiveOrderForTable(ctx context.Context, tableID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM restaurant_orders WHERE table_id = ? AND status NOT IN (?, ?))`
	var exists bool
	err := t.tx.QueryRowContext(ctx, q, tableID,
		string(allocation.StatusServed), string(allocation.StatusCancelled)).Scan(&exists)
	return exists, err
}

func (t *sqlTx) InsertOrder(ctx context.Context, o *model.Order) error {
	const q = `INSERT INTO restaurant_orders
	           (order_number, table_id, customer_name, status, total_amount, number_of_guests, special_instructions, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q,
		o.OrderNumber, o.TableID, o.CustomerName, o.Status, o.TotalAmount,
		o.Guests, o.SpecialInstructions, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("order number %s: %w", o.OrderNumber, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

const orderColumns = `id, order_number, table_id, customer_name, status, total_amount, number_of_guests, special_instructions, created_at, updated_at`

func scanOrder(scan func(dest ...any) error) (*model.Order, error) {
	var o model.Order
	var customerName, special sql.NullString
	err := scan(&o.ID, &o.OrderNumber, &o.TableID, &customerName, &o.Status,
		&o.TotalAmount, &o.Guests, &special, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if customerName.Valid {
		o.CustomerName = &customerName.String
	}
	if special.Valid {
		o.SpecialInstructions = &special.String
	}
	return &o, nil
}

func (t *sqlTx) OrderByID(ctx context.Context, id uint64) (*model.Order, error) {
	o, err := scanOrder(t.tx.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM restaurant_orders WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return o, nil
}

const orderItemColumns = `id, order_id, menu_item_id, menu_item_name, quantity, unit_price, subtotal, special_requests, created_at`

func scanOrderItem(scan func(dest ...any) error) (*model.OrderItem, error) {
	var it model.OrderItem
	var requests sql.NullString
	err := scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.MenuItemName,
		&it.Quantity, &it.UnitPrice, &it.Subtotal, &requests, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	if requests.Valid {
		it.SpecialRequests = &requests.String
	}
	return &it, nil
}

func (t *sqlTx) OrderItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.OrderItem
	for rows.Next() {
		it, err := scanOrderItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (t *sqlTx) OrderItemByID(ctx context.Context, id uint64) (*model.OrderItem, error) {
	it, err := scanOrderItem(t.tx.QueryRowContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return it, nil
}

func (t *sqlTx) InsertOrderItem(ctx context.Context, it *model.OrderItem) error {
	const q = `INSERT INTO order_items
	           (order_id, menu_item_id, menu_item_name, quantity, unit_price, subtotal, special_requests, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q,
		it.OrderID, it.MenuItemID, it.MenuItemName, it.Quantity,
		it.UnitPrice, it.Subtotal, it.SpecialRequests, it.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

func (t *sqlTx) UpdateOrderItem(ctx context.Context, id uint64, quantity uint32, subtotal decimal.Decimal) error {
	const q = `UPDATE order_items SET quantity = ?, subtotal = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, quantity, subtotal, id)
	return err
}

func (t *sqlTx) DeleteOrderItem(ctx context.Context, id uint64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM order_items WHERE id = ?`, id)
	return err
}

func (t *sqlTx) DeleteOrderItems(ctx context.Context, orderID uint64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID)
	return err
}

func (t *sqlTx) SetOrderStatus(ctx context.Context, id uint64, status string, at time.Time) error {
	const q = `UPDATE restaurant_orders SET status = ?, updated_at = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, status, at, id)
	return err
}

func (t *sqlTx) DeleteOrder(ctx context.Context, id uint64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM restaurant_orders WHERE id = ?`, id)
	return err
}

func (t *sqlTx) RecomputeOrderTotal(ctx context.Context, orderID uint64, at time.Time) (decimal.Decimal, error) {
	// Single statement so the stored total can never drift from the items
	// it is derived from.
	const q = `UPDATE restaurant_orders
	           SET total_amount = (SELECT COALESCE(SUM(subtotal), 0) FROM order_items WHERE order_id = ?),
	               updated_at = ?
	           WHERE id = ?`
	if _, err := t.tx.ExecContext(ctx, q, orderID, at, orderID); err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err := t.tx.QueryRowContext(ctx,
		`SELECT total_amount FROM restaurant_orders WHERE id = ?`, orderID).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return decimal.Zero, err
	}
	return total, nil
}

func (t *sqlTx) HasActiveBookingForDate(ctx context.Context, venueID uint64, date string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE venue_id = ? AND event_date = ? AND status NOT IN (?, ?))`
	var exists bool
	err := t.tx.QueryRowContext(ctx, q, venueID, date,
		string(allocation.StatusCompleted), string(allocation.StatusCancelled)).Scan(&exists)
	return exists, err
}

func (t *sqlTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (booking_number, venue_id, customer_name, event_date, attendees, status, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q,
		b.BookingNumber, b.VenueID, b.CustomerName, b.EventDate,
		b.Attendees, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("booking number %s: %w", b.BookingNumber, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

const bookingColumns = `id, booking_number, venue_id, customer_name, DATE_FORMAT(event_date, '%Y-%m-%d'), attendees, status, created_at, updated_at`

func scanBooking(scan func(dest ...any) error) (*model.Booking, error) {
	var b model.Booking
	err := scan(&b.ID, &b.BookingNumber, &b.VenueID, &b.CustomerName,
		&b.EventDate, &b.Attendees, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *sqlTx) BookingByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(t.tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (t *sqlTx) SetBookingStatus(ctx context.Context, id uint64, status string, at time.Time) error {
	const q = `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, status, at, id)
	return err
}

func (t *sqlTx) DeleteBooking(ctx context.Context, id uint64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	return err
}
