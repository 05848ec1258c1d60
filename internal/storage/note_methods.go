package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/notes-saas/notes-server/internal/models"
)

// CreateNote creates a new note
func (s *PostgresStore) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
        INSERT INTO notes (id, created_at, updated_at, title, content, user_id, tenant_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.getDB().ExecContext(ctx, query,
		note.ID, note.CreatedAt, note.UpdatedAt, note.Title,
		note.Content, note.UserID, note.TenantID,
	)

	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetNote gets a note by ID within a tenant
func (s *PostgresStore) GetNote(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	query := `
        SELECT id, created_at, updated_at, title, content, user_id, tenant_id
        FROM notes
        WHERE id = $1 AND tenant_id = $2`

	note := &models.Note{}
	err := s.getDB().QueryRowContext(ctx, query, id, tenantID).Scan(
		&note.ID, &note.CreatedAt, &note.UpdatedAt, &note.Title,
		&note.Content, &note.UserID, &note.TenantID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return note, err
}

// ListNotes lists a tenant's notes, newest first
func (s *PostgresStore) ListNotes(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	query := `
        SELECT id, created_at, updated_at, title, content, user_id, tenant_id
        FROM notes
        WHERE tenant_id = $1
        ORDER BY created_at DESC`

	rows, err := s.getDB().QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		err := rows.Scan(
			&note.ID, &note.CreatedAt, &note.UpdatedAt, &note.Title,
			&note.Content, &note.UserID, &note.TenantID,
		)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// UpdateNote updates a note's title and content within its tenant
func (s *PostgresStore) UpdateNote(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now()

	query := `
        UPDATE notes SET
            updated_at = $3, title = $4, content = $5
        WHERE id = $1 AND tenant_id = $2`

	result, err := s.getDB().ExecContext(ctx, query,
		note.ID, note.TenantID, note.UpdatedAt, note.Title, note.Content,
	)

	if err != nil {
		return err
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

// DeleteNote deletes a note by ID within a tenant
func (s *PostgresStore) DeleteNote(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx,
		"DELETE FROM notes WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return err
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

// CountNotes counts a tenant's notes
func (s *PostgresStore) CountNotes(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := s.getDB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notes WHERE tenant_id = $1", tenantID).Scan(&count)
	return count, err
}
