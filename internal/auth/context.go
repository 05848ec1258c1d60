package auth

import (
	"context"

	"github.com/notes-saas/notes-server/internal/models"
)

// Identity is the resolved caller: the authenticated user and the
// tenant it belongs to. Data operations take their tenant scope from
// here, never from the request path or body.
type Identity struct {
	User   *models.User
	Tenant *models.Tenant
}

type contextKey struct{}

// NewContext returns a context carrying the identity
func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the identity from a context
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok
}
