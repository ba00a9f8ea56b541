package entity

import "time"

// Roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is an authentication principal.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // see Role* constants
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
