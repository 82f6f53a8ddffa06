package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/hospitality-suite/internal/model"
)

// EmployeeRepo provides CRUD operations for the staff roster.
type EmployeeRepo struct {
	db *sql.DB
}

// NewEmployeeRepo returns an EmployeeRepo bound to the given database.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

const employeeColumns = `id, name, role, department, email, DATE_FORMAT(hire_date, '%Y-%m-%d'), created_at, updated_at`

func scanEmployee(scan func(dest ...any) error) (*model.Employee, error) {
	var e model.Employee
	err := scan(&e.ID, &e.Name, &e.Role, &e.Department, &e.Email,
		&e.HireDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new employee. A reused email returns ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	const q = `INSERT INTO employees (name, role, department, email, hire_date) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Role, e.Department, e.Email, e.HireDate)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("employee email %s: %w", e.Email, ErrDuplicate)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	got, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *got
	return nil
}

// GetByID returns one employee or ErrNotFound.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (*model.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// List returns employees ordered by name, optionally filtered by
// department or role.
func (r *EmployeeRepo) List(ctx context.Context, department, role string) ([]model.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	var args []any
	if department != "" {
		q += ` AND department = ?`
		args = append(args, department)
	}
	if role != "" {
		q += ` AND role = ?`
		args = append(args, role)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of an employee.
func (r *EmployeeRepo) Update(ctx context.Context, e *model.Employee) error {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	const q = `UPDATE employees SET name = ?, role = ?, department = ?, email = ?, hire_date = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Role, e.Department, e.Email, e.HireDate, e.ID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("employee email %s: %w", e.Email, ErrDuplicate)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("employee %d: %w", e.ID, ErrNotFound)
	}
	got, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *got
	return nil
}

// Delete removes an employee.
func (r *EmployeeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	return nil
}
