package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a tenant subscription plan
type Plan string

// Subscription plans
const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Valid reports whether the plan is a known value
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro
}

// Note limits applied when a plan is set
const (
	FreePlanNoteLimit = 3
	UnlimitedNotes    = -1
)

// Tenant represents a tenant/organization
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`

	// Subscription
	Plan      Plan `json:"plan" db:"plan"`
	NoteLimit int  `json:"noteLimit" db:"note_limit"`
}

// Upgrade moves the tenant to the pro plan with unlimited notes
func (t *Tenant) Upgrade() {
	t.Plan = PlanPro
	t.NoteLimit = UnlimitedNotes
}

// Cancel moves the tenant back to the free plan and its note ceiling
func (t *Tenant) Cancel() {
	t.Plan = PlanFree
	t.NoteLimit = FreePlanNoteLimit
}

// TenantSummary is the tenant shape returned by plan mutations
type TenantSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Plan      Plan      `json:"plan"`
	NoteLimit int       `json:"noteLimit"`
}

// Summary returns the API summary for the tenant
func (t *Tenant) Summary() TenantSummary {
	return TenantSummary{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Plan:      t.Plan,
		NoteLimit: t.NoteLimit,
	}
}
