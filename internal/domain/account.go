package domain

import "time"

// Role is the single role tag attached to an account.
type Role string

const (
	RoleStandard Role = "STANDARD"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether the role is one of the known tags.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdmin
}

// Account is the domain model for registered users.
// Email is globally unique among live accounts; PasswordHash never leaves the service.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
