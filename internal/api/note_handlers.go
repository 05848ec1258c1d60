package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/notes-saas/notes-server/internal/auth"
	"github.com/notes-saas/notes-server/internal/models"
	"github.com/notes-saas/notes-server/internal/storage"
)

// noteRequest is the note create/update body. Any tenant or user fields
// a client might send are ignored; ownership always comes from the
// authenticated identity.
type noteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// HandleListNotes lists the caller tenant's notes, newest first
func (s *RESTServer) HandleListNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing authorization header")
		return
	}

	notes, err := s.store.ListNotes(r.Context(), identity.Tenant.ID)
	if err != nil {
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, notes)
}

// HandleGetNote gets a note. A note belonging to another tenant is
// indistinguishable from a missing one.
func (s *RESTServer) HandleGetNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing authorization header")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	note, err := s.store.GetNote(r.Context(), identity.Tenant.ID, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, note)
}

// HandleCreateNote creates a note within the caller's tenant, enforcing
// the free-plan note quota.
func (s *RESTServer) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing authorization header")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	note := &models.Note{
		TenantModel: models.TenantModel{
			TenantID: identity.Tenant.ID,
		},
		Title:   req.Title,
		Content: req.Content,
		UserID:  identity.User.ID,
	}

	if identity.Tenant.Plan == models.PlanFree {
		if !s.createNoteWithQuota(w, r, note) {
			return
		}
	} else {
		if err := s.store.CreateNote(r.Context(), note); err != nil {
			s.respondServerError(w, r, err)
			return
		}
	}

	s.respondJSON(w, http.StatusCreated, note)
}

// createNoteWithQuota runs the count-then-insert sequence inside a
// transaction that locks the tenant row, so two concurrent creates at
// the ceiling cannot both pass the check. The original check-then-act
// race is deliberately closed here. Writes the error response itself
// and reports whether the note was created.
func (s *RESTServer) createNoteWithQuota(w http.ResponseWriter, r *http.Request, note *models.Note) bool {
	ctx := r.Context()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		s.respondServerError(w, r, err)
		return false
	}
	defer tx.Rollback()

	// Re-read the plan under lock; an upgrade may have landed since
	// the identity was resolved.
	tenant, err := tx.LockTenant(ctx, note.TenantID)
	if err != nil {
		s.respondServerError(w, r, err)
		return false
	}

	if tenant.Plan == models.PlanFree {
		count, err := tx.CountNotes(ctx, tenant.ID)
		if err != nil {
			s.respondServerError(w, r, err)
			return false
		}

		if tenant.NoteLimit >= 0 && count >= int64(tenant.NoteLimit) {
			s.respondJSON(w, http.StatusForbidden, map[string]interface{}{
				"error":        "Note limit reached. Upgrade to Pro for unlimited notes.",
				"limitReached": true,
			})
			return false
		}
	}

	if err := tx.CreateNote(ctx, note); err != nil {
		s.respondServerError(w, r, err)
		return false
	}

	if err := tx.Commit(); err != nil {
		s.respondServerError(w, r, err)
		return false
	}

	return true
}

// HandleUpdateNote replaces a note's title and content
func (s *RESTServer) HandleUpdateNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing authorization header")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	note, err := s.store.GetNote(r.Context(), identity.Tenant.ID, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		s.respondServerError(w, r, err)
		return
	}

	note.Title = req.Title
	note.Content = req.Content

	if err := s.store.UpdateNote(r.Context(), note); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, note)
}

// HandleDeleteNote deletes a note
func (s *RESTServer) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing authorization header")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	if err := s.store.DeleteNote(r.Context(), identity.Tenant.ID, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		s.respondServerError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Note deleted successfully",
	})
}
