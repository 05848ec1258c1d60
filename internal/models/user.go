package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user role within a tenant
type Role string

// User roles
const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether the role is a known value
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User represents a system user
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`

	Role Role `json:"role" db:"role"`

	TenantID uuid.UUID `json:"tenantId" db:"tenant_id"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
