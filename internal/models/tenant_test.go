package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanTransitions(t *testing.T) {
	tenant := &Tenant{Plan: PlanFree, NoteLimit: FreePlanNoteLimit}

	tenant.Upgrade()
	require.Equal(t, PlanPro, tenant.Plan)
	require.Equal(t, UnlimitedNotes, tenant.NoteLimit)

	tenant.Cancel()
	require.Equal(t, PlanFree, tenant.Plan)
	require.Equal(t, FreePlanNoteLimit, tenant.NoteLimit)
}

func TestEnumValidity(t *testing.T) {
	require.True(t, PlanFree.Valid())
	require.True(t, PlanPro.Valid())
	require.False(t, Plan("enterprise").Valid())

	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleMember.Valid())
	require.False(t, Role("owner").Valid())
}
