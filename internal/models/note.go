package models

import (
	"github.com/google/uuid"
)

// Note represents a note owned by a user within a tenant.
// TenantID is set once at creation from the authenticated identity
// and is never reassigned.
type Note struct {
	TenantModel

	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`

	UserID uuid.UUID `json:"userId" db:"user_id"`
}
