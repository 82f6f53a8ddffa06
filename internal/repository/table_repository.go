package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
)

// TableRepo provides CRUD operations for restaurant tables.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, table_number, capacity, status, location, description, created_at, updated_at`

func scanTable(scan func(dest ...any) error) (*model.Table, error) {
	var t model.Table
	var location, description sql.NullString
	err := scan(&t.ID, &t.TableNumber, &t.Capacity, &t.Status,
		&location, &description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if location.Valid {
		t.Location = &location.String
	}
	if description.Valid {
		t.Description = &description.String
	}
	return &t, nil
}

// Create inserts a new table and reads the row back so timestamps and
// defaults are populated. A reused table number returns ErrDuplicate.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO restaurant_tables (table_number, capacity, status, location, description)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.TableNumber, t.Capacity, t.Status, t.Location, t.Description)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("table number %d: %w", t.TableNumber, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	got, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *got
	return nil
}

// GetByID returns one table or ErrNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	t, err := scanTable(r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM restaurant_tables WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("table %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

// List returns tables filtered by status, location and minimum capacity,
// ordered by table number. Zero values mean no filter.
func (r *TableRepo) List(ctx context.Context, status, location string, minCapacity uint32) ([]model.Table, error) {
	q := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE 1=1`
	var args []any
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	if location != "" {
		q += ` AND location = ?`
		args = append(args, location)
	}
	if minCapacity > 0 {
		q += ` AND capacity >= ?`
		args = append(args, minCapacity)
	}
	q += ` ORDER BY table_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Table
	for rows.Next() {
		t, err := scanTable(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of a table.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
	const q = `UPDATE restaurant_tables
	           SET table_number = ?, capacity = ?, status = ?, location = ?, description = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.TableNumber, t.Capacity, t.Status, t.Location, t.Description, t.ID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("table number %d: %w", t.TableNumber, ErrDuplicate)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("table %d: %w", t.ID, ErrNotFound)
	}
	got, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *got
	return nil
}

// SetStatus changes a table's status only.
func (r *TableRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE restaurant_tables SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("table %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a table. A table that still has an order in a
// non-terminal status cannot be removed and returns ErrConflict.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	var open bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM restaurant_orders WHERE table_id = ? AND status NOT IN (?, ?))`,
		id, string(allocation.StatusServed), string(allocation.StatusCancelled)).Scan(&open)
	if err != nil {
		return err
	}
	if open {
		return fmt.Errorf("table %d has open orders: %w", id, ErrConflict)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM restaurant_tables WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("table %d: %w", id, ErrNotFound)
	}
	return nil
}
