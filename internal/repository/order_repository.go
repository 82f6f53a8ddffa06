package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
)

// OrderRepo is the read side for orders. All writes go through the
// transactional store so the aggregate invariants hold; handlers use this
// repo for detail reads, listings and the stats endpoint.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// GetByID returns one order with its line items, or ErrNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM restaurant_orders WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// GetByNumber returns one order with its line items by its human-facing
// number, or ErrNotFound.
func (r *OrderRepo) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM restaurant_orders WHERE order_number = ?`, number).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", number, ErrNotFound)
		}
		return nil, err
	}
	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) itemsFor(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
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

// OrderFilter narrows List results. Zero values mean no filter.
type OrderFilter struct {
	Status  string
	TableID uint64
}

// List returns order headers matching the filter, newest first. Items are
// not loaded on listings.
func (r *OrderRepo) List(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM restaurant_orders WHERE 1=1`
	var args []any
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.TableID != 0 {
		q += ` AND table_id = ?`
		args = append(args, f.TableID)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// OrderStats summarizes the order book for the dashboard.
type OrderStats struct {
	Total        int64           `json:"total_orders"`
	ByStatus     map[string]int64 `json:"by_status"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// Stats counts orders per status and sums the revenue of served orders.
func (r *OrderRepo) Stats(ctx context.Context) (*OrderStats, error) {
	stats := &OrderStats{ByStatus: make(map[string]int64), TotalRevenue: decimal.Zero}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM restaurant_orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM restaurant_orders WHERE status = ?`,
		string(allocation.StatusServed)).Scan(&stats.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
