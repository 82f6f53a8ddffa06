// Package repository implements data access over MySQL: per-entity CRUD
// repositories plus the transactional store used by the order and booking
// orchestrators. Sentinel errors defined here let handlers map failure
// scenarios onto HTTP statuses without inspecting driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row. Handlers translate
// it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique key,
// such as reusing a table number or guest email. Handlers translate it
// into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate value")

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent state, such as deleting a table that still has open orders.
// Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether err is a MySQL unique key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isFKViolation reports whether err is a MySQL foreign key violation,
// either a delete blocked by child rows or an insert referencing a
// missing parent.
func isFKViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1451 || me.Number == 1452)
}
