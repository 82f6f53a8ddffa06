package model

import "time"

// Staff account roles used by the RequireRole middleware.
const (
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// User is a staff login account. Only the bcrypt hash of the password is
// stored; the JSON tag on PasswordHash keeps it out of API responses.
type User struct {
	ID           uint64    `json:"id"`    // users.id
	Email        string    `json:"email"` // users.email (unique)
	PasswordHash string    `json:"-"`     // users.password_hash
	Role         string    `json:"role"`  // users.role
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
