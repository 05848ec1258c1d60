package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/notes-saas/notes-server/internal/models"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidData  = errors.New("invalid data")
)

// Store defines the storage interface. Note methods take the tenant ID
// explicitly so a lookup can never cross tenants: a row whose id matches
// but whose tenant does not is reported as ErrNotFound.
type Store interface {
	// Transaction support
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Tenant methods
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	LockTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *models.Tenant) error

	// Note methods
	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error)
	ListNotes(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	UpdateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, tenantID, id uuid.UUID) error
	CountNotes(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// Close the store
	Close() error
}
