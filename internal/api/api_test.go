package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notes-saas/notes-server/internal/config"
	"github.com/notes-saas/notes-server/internal/models"
	"github.com/notes-saas/notes-server/pkg/crypto"
)

// testEnv bundles a server wired to an in-memory store with the seeded
// acme and globex tenants and their admin/member users.
type testEnv struct {
	server *RESTServer
	store  *memStore

	acme   *models.Tenant
	globex *models.Tenant

	acmeAdmin    *models.User
	acmeMember   *models.User
	globexAdmin  *models.User
	globexMember *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  config.Duration(time.Hour),
			RefreshTokenTTL: config.Duration(24 * time.Hour),
		},
	}

	store := newMemStore()
	env := &testEnv{
		server: NewRESTServer(cfg, store),
		store:  store,
	}

	env.acme = env.addTenant(t, "Acme Corporation", "acme", models.PlanFree, models.FreePlanNoteLimit)
	env.globex = env.addTenant(t, "Globex Corporation", "globex", models.PlanFree, models.FreePlanNoteLimit)

	env.acmeAdmin = env.addUser(t, "admin@acme.test", models.RoleAdmin, env.acme)
	env.acmeMember = env.addUser(t, "user@acme.test", models.RoleMember, env.acme)
	env.globexAdmin = env.addUser(t, "admin@globex.test", models.RoleAdmin, env.globex)
	env.globexMember = env.addUser(t, "user@globex.test", models.RoleMember, env.globex)

	return env
}

func (e *testEnv) addTenant(t *testing.T, name, slug string, plan models.Plan, limit int) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{Name: name, Slug: slug, Plan: plan, NoteLimit: limit}
	require.NoError(t, e.store.CreateTenant(context.Background(), tenant))
	return tenant
}

func (e *testEnv) addUser(t *testing.T, email string, role models.Role, tenant *models.Tenant) *models.User {
	t.Helper()

	hash, err := crypto.HashPassword("password")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		TenantID:     tenant.ID,
	}
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) addNote(t *testing.T, user *models.User, title, content string) *models.Note {
	t.Helper()

	note := &models.Note{
		TenantModel: models.TenantModel{TenantID: user.TenantID},
		Title:       title,
		Content:     content,
		UserID:      user.ID,
	}
	require.NoError(t, e.store.CreateNote(context.Background(), note))
	return note
}

// token issues an access token for the user
func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()

	access, _, err := e.server.auth.GenerateTokenPair(user)
	require.NoError(t, err)
	return access
}

// request performs an HTTP request against the server. A nil body sends
// no payload; any other value is marshaled to JSON. A raw json.RawMessage
// is sent as-is.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case json.RawMessage:
			buf.Write(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func rawJSON(s string) json.RawMessage {
	return json.RawMessage(s)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	require.Equal(t, "ok", body["status"])
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer token", header: "Basic abc123"},
		{name: "malformed token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			env.server.Handler().ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	env := newTestEnv(t)

	ghost := &models.User{
		Email:    "ghost@acme.test",
		Role:     models.RoleMember,
		TenantID: env.acme.ID,
	}
	require.NoError(t, env.store.CreateUser(context.Background(), ghost))
	token := env.token(t, ghost)

	delete(env.store.users, ghost.ID)

	w := env.request(t, http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  config.Duration(-time.Minute),
			RefreshTokenTTL: config.Duration(time.Hour),
		},
	}
	store := newMemStore()
	server := NewRESTServer(cfg, store)

	tenant := &models.Tenant{Name: "T", Slug: "t", Plan: models.PlanFree, NoteLimit: models.FreePlanNoteLimit}
	require.NoError(t, store.CreateTenant(context.Background(), tenant))
	user := &models.User{Email: "u@t.test", Role: models.RoleMember, TenantID: tenant.ID}
	require.NoError(t, store.CreateUser(context.Background(), user))

	token, _, err := server.auth.GenerateTokenPair(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
