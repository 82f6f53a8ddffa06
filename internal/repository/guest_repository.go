package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/hospitality-suite/internal/model"
)

// GuestRepo provides CRUD operations for the guest registry.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, name, email, phone, address, created_at, updated_at`

func scanGuest(scan func(dest ...any) error) (*model.Guest, error) {
	var g model.Guest
	var phone, address sql.NullString
	err := scan(&g.ID, &g.Name, &g.Email, &phone, &address, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		g.Phone = &phone.String
	}
	if address.Valid {
		g.Address = &address.String
	}
	return &g, nil
}

// Create inserts a new guest. A reused email returns ErrDuplicate.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	const q = `INSERT INTO guests (name, email, phone, address) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.Name, g.Email, g.Phone, g.Address)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("guest email %s: %w", g.Email, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)

	got, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = *got
	return nil
}

// GetByID returns one guest or ErrNotFound.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	g, err := scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("guest %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return g, nil
}

// List returns guests ordered by name, optionally filtered by a substring
// match on name or email.
func (r *GuestRepo) List(ctx context.Context, search string) ([]model.Guest, error) {
	q := `SELECT ` + guestColumns + ` FROM guests`
	var args []any
	if search != "" {
		q += ` WHERE name LIKE ? OR email LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Guest
	for rows.Next() {
		g, err := scanGuest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of a guest.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	const q = `UPDATE guests SET name = ?, email = ?, phone = ?, address = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, g.Name, g.Email, g.Phone, g.Address, g.ID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("guest email %s: %w", g.Email, ErrDuplicate)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("guest %d: %w", g.ID, ErrNotFound)
	}
	got, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = *got
	return nil
}

// Delete removes a guest.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("guest %d: %w", id, ErrNotFound)
	}
	return nil
}
