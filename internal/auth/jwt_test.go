package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/notes-saas/notes-server/internal/config"
	"github.com/notes-saas/notes-server/internal/models"
)

func testManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(&config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  config.Duration(accessTTL),
		RefreshTokenTTL: config.Duration(24 * time.Hour),
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    "admin@acme.test",
		Role:     models.RoleAdmin,
		TenantID: uuid.New(),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager(time.Hour)
	user := testUser()

	access, refresh, err := m.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, models.RoleAdmin, claims.Role)
	require.Equal(t, user.TenantID, claims.TenantID)
}

func TestValidateToken_Expired(t *testing.T) {
	m := testManager(-time.Minute)

	access, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	require.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := testManager(time.Hour)

	access, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTManager(&config.JWTConfig{
		Secret:          "a-different-secret",
		AccessTokenTTL:  config.Duration(time.Hour),
		RefreshTokenTTL: config.Duration(24 * time.Hour),
	})

	_, err = other.ValidateToken(access)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	m := testManager(time.Hour)

	_, err := m.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestValidateRefreshToken(t *testing.T) {
	m := testManager(time.Hour)
	user := testUser()

	_, refresh, err := m.GenerateTokenPair(user)
	require.NoError(t, err)

	userID, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}
