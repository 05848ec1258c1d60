package api

import (
	"encoding/json"
	"net/http"

	"github.com/notes-saas/notes-server/internal/auth"
	"github.com/notes-saas/notes-server/internal/models"
)

// userPayload is the user shape returned by auth endpoints
type userPayload struct {
	ID     string               `json:"id"`
	Email  string               `json:"email"`
	Role   models.Role          `json:"role"`
	Tenant models.TenantSummary `json:"tenant"`
}

func newUserPayload(user *models.User, tenant *models.Tenant) userPayload {
	return userPayload{
		ID:     user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		Tenant: tenant.Summary(),
	}
}

// HandleLogin handles user login
func (s *RESTServer) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !s.auth.VerifyPassword(req.Password, user.PasswordHash) {
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tenant, err := s.store.GetTenant(r.Context(), user.TenantID)
	if err != nil {
		s.respondServerError(w, r, err)
		return
	}

	accessToken, refreshToken, err := s.auth.GenerateTokenPair(user)
	if err != nil {
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":        accessToken,
		"refreshToken": refreshToken,
		"user":         newUserPayload(user, tenant),
	})
}

// HandleRefresh handles token refresh
func (s *RESTServer) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := s.auth.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	accessToken, refreshToken, err := s.auth.GenerateTokenPair(user)
	if err != nil {
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// HandleGetCurrentUser returns the resolved identity
func (s *RESTServer) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing authorization header")
		return
	}

	s.respondJSON(w, http.StatusOK, newUserPayload(identity.User, identity.Tenant))
}
