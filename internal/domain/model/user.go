package model

import (
	"time"

	"github.com/google/uuid"
)

// Role grants access to a subset of the API.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleWaiter        Role = "waiter"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleWaiter
}

// User is a staff member able to sign in.
type User struct {
	ID           uuid.UUID
	Mail         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
