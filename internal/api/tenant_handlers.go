package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notes-saas/notes-server/internal/auth"
	"github.com/notes-saas/notes-server/internal/models"
	"github.com/notes-saas/notes-server/internal/storage"
)

// resolveOwnTenant loads the tenant addressed by the slug path parameter
// and verifies it is the caller's own tenant. The role gate alone is not
// enough: an admin of one tenant must not mutate another tenant's plan.
// Writes the error response and returns nil when the check fails.
func (s *RESTServer) resolveOwnTenant(w http.ResponseWriter, r *http.Request) *models.Tenant {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing authorization header")
		return nil
	}

	tenant, err := s.store.GetTenantBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "Tenant not found")
			return nil
		}
		s.respondServerError(w, r, err)
		return nil
	}

	if tenant.ID != identity.Tenant.ID {
		s.respondError(w, http.StatusForbidden, "Access denied")
		return nil
	}

	return tenant
}

// HandleUpgradeTenant upgrades the caller's tenant to the pro plan
func (s *RESTServer) HandleUpgradeTenant(w http.ResponseWriter, r *http.Request) {
	tenant := s.resolveOwnTenant(w, r)
	if tenant == nil {
		return
	}

	tenant.Upgrade()

	if err := s.store.UpdateTenant(r.Context(), tenant); err != nil {
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully upgraded to Pro plan",
		"tenant":  tenant.Summary(),
	})
}

// HandleCancelTenant moves the caller's tenant back to the free plan
func (s *RESTServer) HandleCancelTenant(w http.ResponseWriter, r *http.Request) {
	tenant := s.resolveOwnTenant(w, r)
	if tenant == nil {
		return
	}

	tenant.Cancel()

	if err := s.store.UpdateTenant(r.Context(), tenant); err != nil {
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully cancelled Pro plan",
		"tenant":  tenant.Summary(),
	})
}
