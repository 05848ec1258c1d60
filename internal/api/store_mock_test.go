package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notes-saas/notes-server/internal/models"
	"github.com/notes-saas/notes-server/internal/storage"
)

// memStore is an in-memory Store for handler tests. BeginTx returns the
// store itself: the handlers under test never interleave transactions,
// so serializability is trivially satisfied.
type memStore struct {
	mu      sync.Mutex
	clock   time.Time
	users   map[uuid.UUID]*models.User
	tenants map[uuid.UUID]*models.Tenant
	notes   map[uuid.UUID]*models.Note
}

func newMemStore() *memStore {
	return &memStore{
		clock:   time.Now(),
		users:   make(map[uuid.UUID]*models.User),
		tenants: make(map[uuid.UUID]*models.Tenant),
		notes:   make(map[uuid.UUID]*models.Note),
	}
}

// nextTime returns a strictly increasing timestamp so creation order is
// observable in sorts.
func (s *memStore) nextTime() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *memStore) BeginTx(ctx context.Context) (storage.Store, error) { return s, nil }
func (s *memStore) Commit() error                                      { return nil }
func (s *memStore) Rollback() error                                    { return nil }
func (s *memStore) Close() error                                       { return nil }

func (s *memStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return storage.ErrDuplicateKey
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.nextTime()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tenants {
		if t.Slug == tenant.Slug {
			return storage.ErrDuplicateKey
		}
	}

	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	now := s.nextTime()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	clone := *tenant
	s.tenants[tenant.ID] = &clone
	return nil
}

func (s *memStore) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *tenant
	return &clone, nil
}

func (s *memStore) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tenant := range s.tenants {
		if tenant.Slug == slug {
			clone := *tenant
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) LockTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.GetTenant(ctx, id)
}

func (s *memStore) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenant.ID]; !ok {
		return storage.ErrNotFound
	}
	tenant.UpdatedAt = s.nextTime()
	clone := *tenant
	s.tenants[tenant.ID] = &clone
	return nil
}

func (s *memStore) CreateNote(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	now := s.nextTime()
	note.CreatedAt = now
	note.UpdatedAt = now

	clone := *note
	s.notes[note.ID] = &clone
	return nil
}

func (s *memStore) GetNote(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return nil, storage.ErrNotFound
	}
	clone := *note
	return &clone, nil
}

func (s *memStore) ListNotes(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := []*models.Note{}
	for _, note := range s.notes {
		if note.TenantID == tenantID {
			clone := *note
			notes = append(notes, &clone)
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *memStore) UpdateNote(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.notes[note.ID]
	if !ok || existing.TenantID != note.TenantID {
		return storage.ErrNotFound
	}

	note.UpdatedAt = s.nextTime()
	existing.Title = note.Title
	existing.Content = note.Content
	existing.UpdatedAt = note.UpdatedAt
	return nil
}

func (s *memStore) DeleteNote(ctx context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return storage.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *memStore) CountNotes(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, note := range s.notes {
		if note.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}
