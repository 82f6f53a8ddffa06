package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/hospitality-suite/internal/model"
)

// MenuItemRepo provides CRUD operations for the menu catalog.
type MenuItemRepo struct {
	db *sql.DB
}

// NewMenuItemRepo returns a MenuItemRepo bound to the given database.
func NewMenuItemRepo(db *sql.DB) *MenuItemRepo { return &MenuItemRepo{db: db} }

const menuItemColumns = `id, name, description, price, category, is_available, preparation_time_minutes, created_at, updated_at`

func scanMenuItem(scan func(dest ...any) error) (*model.MenuItem, error) {
	var mi model.MenuItem
	var description sql.NullString
	var prep sql.NullInt32
	err := scan(&mi.ID, &mi.Name, &description, &mi.Price, &mi.Category,
		&mi.IsAvailable, &prep, &mi.CreatedAt, &mi.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		mi.Description = &description.String
	}
	if prep.Valid {
		p := uint32(prep.Int32)
		mi.PrepMinutes = &p
	}
	return &mi, nil
}

// Create inserts a new menu item.
func (r *MenuItemRepo) Create(ctx context.Context, mi *model.MenuItem) error {
	const q = `INSERT INTO menu_items (name, description, price, category, is_available, preparation_time_minutes)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, mi.Name, mi.Description, mi.Price, mi.Category, mi.IsAvailable, mi.PrepMinutes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	mi.ID = uint64(id)

	got, err := r.GetByID(ctx, mi.ID)
	if err != nil {
		return err
	}
	*mi = *got
	return nil
}

// GetByID returns one menu item or ErrNotFound.
func (r *MenuItemRepo) GetByID(ctx context.Context, id uint64) (*model.MenuItem, error) {
	mi, err := scanMenuItem(r.db.QueryRowContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return mi, nil
}

// List returns menu items, optionally filtered by category or limited to
// the available ones, ordered by category then name.
func (r *MenuItemRepo) List(ctx context.Context, category string, availableOnly bool) ([]model.MenuItem, error) {
	q := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE 1=1`
	var args []any
	if category != "" {
		q += ` AND category = ?`
		args = append(args, category)
	}
	if availableOnly {
		q += ` AND is_available = TRUE`
	}
	q += ` ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.MenuItem
	for rows.Next() {
		mi, err := scanMenuItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *mi)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of a menu item. Existing order
// lines keep their snapshotted name and price.
func (r *MenuItemRepo) Update(ctx context.Context, mi *model.MenuItem) error {
	const q = `UPDATE menu_items
	           SET name = ?, description = ?, price = ?, category = ?, is_available = ?, preparation_time_minutes = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, mi.Name, mi.Description, mi.Price, mi.Category, mi.IsAvailable, mi.PrepMinutes, mi.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("menu item %d: %w", mi.ID, ErrNotFound)
	}
	got, err := r.GetByID(ctx, mi.ID)
	if err != nil {
		return err
	}
	*mi = *got
	return nil
}

// SetAvailability toggles whether an item can be ordered.
func (r *MenuItemRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET is_available = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		available, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a menu item from the catalog. A menu item still
// referenced by order lines cannot be removed and returns ErrConflict;
// historical orders keep their snapshots, so the row must stay.
func (r *MenuItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("menu item %d is referenced by orders: %w", id, ErrConflict)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}
