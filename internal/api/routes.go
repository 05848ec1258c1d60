package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/notes-saas/notes-server/internal/models"
)

// setupAPIRoutes sets up /api routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.HandleLogin)
		r.Post("/refresh", s.HandleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/me", s.HandleGetCurrentUser)
		})
	})

	// Notes
	r.Route("/notes", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/", s.HandleListNotes)
		r.Post("/", s.HandleCreateNote)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.HandleGetNote)
			r.Put("/", s.HandleUpdateNote)
			r.Delete("/", s.HandleDeleteNote)
		})
	})

	// Tenant plan mutations (admin only)
	r.Route("/tenants", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(s.requireRole(models.RoleAdmin))
		r.Post("/{slug}/upgrade", s.HandleUpgradeTenant)
		r.Post("/{slug}/cancel", s.HandleCancelTenant)
	})
}
