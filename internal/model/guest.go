package model

import "time"

// Guest is a registry entry for a hotel guest. Email is the unique human
// key. Plain CRUD, no cross-record invariants.
type Guest struct {
	ID        uint64    `json:"id"`    // guests.id
	Name      string    `json:"name"`  // guests.name
	Email     string    `json:"email"` // guests.email (unique)
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
