package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/hospitality-suite/internal/allocation"
	"github.com/iliyamo/hospitality-suite/internal/model"
)

// VenueRepo provides CRUD operations for event venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

const venueColumns = `id, name, capacity, price_per_hour, created_at, updated_at`

func scanVenue(scan func(dest ...any) error) (*model.Venue, error) {
	var v model.Venue
	err := scan(&v.ID, &v.Name, &v.Capacity, &v.PricePerHour, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new venue. A reused name returns ErrDuplicate.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, capacity, price_per_hour) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.Capacity, v.PricePerHour)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("venue %q: %w", v.Name, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	got, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = *got
	return nil
}

// GetByID returns one venue or ErrNotFound.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("venue %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

// List returns all venues ordered by name.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+venueColumns+` FROM venues ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Venue
	for rows.Next() {
		v, err := scanVenue(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of a venue.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues SET name = ?, capacity = ?, price_per_hour = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.Capacity, v.PricePerHour, v.ID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("venue %q: %w", v.Name, ErrDuplicate)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("venue %d: %w", v.ID, ErrNotFound)
	}
	got, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = *got
	return nil
}

// Delete removes a venue. A venue with bookings in a non-terminal status
// cannot be removed and returns ErrConflict.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	var open bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE venue_id = ? AND status NOT IN (?, ?))`,
		id, string(allocation.StatusCompleted), string(allocation.StatusCancelled)).Scan(&open)
	if err != nil {
		return err
	}
	if open {
		return fmt.Errorf("venue %d has active bookings: %w", id, ErrConflict)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("venue %d: %w", id, ErrNotFound)
	}
	return nil
}
