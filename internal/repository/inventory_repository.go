package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/hospitality-suite/internal/model"
)

// InventoryRepo provides CRUD and stock adjustment operations for
// inventory items.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns an InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// ErrStockUnderflow is returned when an adjustment would take an item's
// quantity below zero.
var ErrStockUnderflow = errors.New("stock cannot go negative")

const inventoryColumns = `id, name, category, quantity, unit, reorder_level, created_at, updated_at`

func scanInventoryItem(scan func(dest ...any) error) (*model.InventoryItem, error) {
	var it model.InventoryItem
	err := scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.Unit,
		&it.ReorderLevel, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserts a new inventory item. A reused name returns ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, it *model.InventoryItem) error {
	const q = `INSERT INTO inventory_items (name, category, quantity, unit, reorder_level)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, it.Name, it.Category, it.Quantity, it.Unit, it.ReorderLevel)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("inventory item %q: %w", it.Name, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)

	got, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	*it = *got
	return nil
}

// GetByID returns one inventory item or ErrNotFound.
func (r *InventoryRepo) GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	it, err := scanInventoryItem(r.db.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return it, nil
}

// List returns inventory items ordered by category then name. With
// lowStockOnly set, only items at or below their reorder level are
// returned.
func (r *InventoryRepo) List(ctx context.Context, category string, lowStockOnly bool) ([]model.InventoryItem, error) {
	q := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE 1=1`
	var args []any
	if category != "" {
		q += ` AND category = ?`
		args = append(args, category)
	}
	if lowStockOnly {
		q += ` AND quantity <= reorder_level`
	}
	q += ` ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// Update rewrites the descriptive columns of an inventory item. Quantity
// changes go through Adjust.
func (r *InventoryRepo) Update(ctx context.Context, it *model.InventoryItem) error {
	const q = `UPDATE inventory_items SET name = ?, category = ?, unit = ?, reorder_level = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, it.Name, it.Category, it.Unit, it.ReorderLevel, it.ID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("inventory item %q: %w", it.Name, ErrDuplicate)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("inventory item %d: %w", it.ID, ErrNotFound)
	}
	got, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	*it = *got
	return nil
}

// Adjust applies a signed delta to an item's quantity. The guard in the
// WHERE clause makes the adjustment atomic: a concurrent decrement that
// would push the stock negative simply matches no row.
func (r *InventoryRepo) Adjust(ctx context.Context, id uint64, delta int64) (*model.InventoryItem, error) {
	const q = `UPDATE inventory_items
	           SET quantity = quantity + ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND quantity + ? >= 0`
	res, err := r.db.ExecContext(ctx, q, delta, id, delta)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Distinguish a missing row from an underflow.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("inventory item %d: %w", id, ErrStockUnderflow)
	}
	return r.GetByID(ctx, id)
}

// Delete removes an inventory item.
func (r *InventoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}
	return nil
}
