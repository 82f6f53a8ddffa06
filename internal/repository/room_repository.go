package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/hospitality-suite/internal/model"
)

// RoomRepo provides CRUD operations for the hotel room catalog.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, room_number, type, price_per_night, status, created_at, updated_at`

func scanRoom(scan func(dest ...any) error) (*model.Room, error) {
	var rm model.Room
	err := scan(&rm.ID, &rm.RoomNumber, &rm.Type, &rm.PricePerNight,
		&rm.Status, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create inserts a new room. A reused room number returns ErrDuplicate.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (room_number, type, price_per_night, status) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.RoomNumber, rm.Type, rm.PricePerNight, rm.Status)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("room %s: %w", rm.RoomNumber, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)

	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// GetByID returns one room or ErrNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return rm, nil
}

// List returns rooms ordered by room number, optionally filtered by type
// or status.
func (r *RoomRepo) List(ctx context.Context, roomType, status string) ([]model.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE 1=1`
	var args []any
	if roomType != "" {
		q += ` AND type = ?`
		args = append(args, roomType)
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Room
	for rows.Next() {
		rm, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of a room.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms SET room_number = ?, type = ?, price_per_night = ?, status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.RoomNumber, rm.Type, rm.PricePerNight, rm.Status, rm.ID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("room %s: %w", rm.RoomNumber, ErrDuplicate)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("room %d: %w", rm.ID, ErrNotFound)
	}
	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// Delete removes a room.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return nil
}
