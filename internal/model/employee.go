package model

import "time"

// Employee is a staff roster entry. Email is the unique human key.
type Employee struct {
	ID         uint64    `json:"id"`         // employees.id
	Name       string    `json:"name"`       // employees.name
	Role       string    `json:"role"`       // employees.role (chef, waiter, ...)
	Department string    `json:"department"` // employees.department
	Email      string    `json:"email"`      // employees.email (unique)
	HireDate   string    `json:"hire_date"`  // employees.hire_date (DATE)
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
