package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the capability level granted to an authenticated profile.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// UserProfile is an authenticated identity consumed from the identity
// provider. The application reads profiles but never owns their lifecycle.
type UserProfile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
