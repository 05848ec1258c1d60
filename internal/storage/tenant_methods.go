package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/notes-saas/notes-server/internal/models"
)

// CreateTenant creates a new tenant
func (s *PostgresStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}

	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	query := `
        INSERT INTO tenants (id, created_at, updated_at, name, slug, plan, note_limit)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.getDB().ExecContext(ctx, query,
		tenant.ID, tenant.CreatedAt, tenant.UpdatedAt, tenant.Name,
		tenant.Slug, tenant.Plan, tenant.NoteLimit,
	)

	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetTenant gets a tenant by ID
func (s *PostgresStore) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.scanTenant(s.getDB().QueryRowContext(ctx, `
        SELECT id, created_at, updated_at, name, slug, plan, note_limit
        FROM tenants
        WHERE id = $1`, id))
}

// GetTenantBySlug gets a tenant by slug
func (s *PostgresStore) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	return s.scanTenant(s.getDB().QueryRowContext(ctx, `
        SELECT id, created_at, updated_at, name, slug, plan, note_limit
        FROM tenants
        WHERE slug = $1`, slug))
}

// LockTenant gets a tenant by ID and locks its row until the surrounding
// transaction ends. Concurrent note creations for the same tenant
// serialize on this lock, which keeps the quota check atomic.
func (s *PostgresStore) LockTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.scanTenant(s.getDB().QueryRowContext(ctx, `
        SELECT id, created_at, updated_at, name, slug, plan, note_limit
        FROM tenants
        WHERE id = $1
        FOR UPDATE`, id))
}

// UpdateTenant updates a tenant
func (s *PostgresStore) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	tenant.UpdatedAt = time.Now()

	query := `
        UPDATE tenants SET
            updated_at = $2, name = $3, slug = $4, plan = $5, note_limit = $6
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		tenant.ID, tenant.UpdatedAt, tenant.Name, tenant.Slug,
		tenant.Plan, tenant.NoteLimit,
	)

	if err != nil {
		return mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStore) scanTenant(row *sql.Row) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(
		&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt, &tenant.Name,
		&tenant.Slug, &tenant.Plan, &tenant.NoteLimit,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return tenant, err
}
