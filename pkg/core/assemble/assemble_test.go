package assemble

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
)

func TestPeople_NilRoleIDsBecomeEmpty(t *testing.T) {
	people := People([]db.PersonRow{{ID: "p1", Name: "Alice", RoleIDs: nil}})

	require.Len(t, people, 1)
	assert.NotNil(t, people[0].RoleIDs)
	assert.Empty(t, people[0].RoleIDs)
}

func TestGroups_MembersMatchForeignKeys(t *testing.T) {
	groups := Groups(
		[]db.GroupRow{
			{ID: "g1", Name: "Day team"},
			{ID: "g2", Name: "Night team"},
		},
		[]db.GroupMemberRow{
			{GroupID: "g1", PersonID: "alice"},
			{GroupID: "g1", PersonID: "bob"},
			{GroupID: "g2", PersonID: "carol"},
			{GroupID: "missing", PersonID: "dave"},
		},
	)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"alice", "bob"}, groups[0].PersonIDs)
	assert.Equal(t, []string{"carol"}, groups[1].PersonIDs)
}

func TestTemplates_RolesNested(t *testing.T) {
	templates := Templates(
		[]db.TemplateRow{
			{ID: "t1", Name: "Morning", StartTime: "08:00", EndTime: "14:00"},
			{ID: "t2", Name: "Evening", StartTime: "14:00", EndTime: "20:00"},
		},
		[]db.TemplateRoleRow{
			{ID: "tr1", TemplateID: "t1", RoleID: "nurse", RoleName: "Nurse", RequiredCount: 2},
			{ID: "tr2", TemplateID: "t1", RoleID: "doctor", RoleName: "Doctor", RequiredCount: 1},
		},
	)

	require.Len(t, templates, 2)
	require.Len(t, templates[0].Roles, 2)
	assert.Equal(t, "Nurse", templates[0].Roles[0].RoleName)
	assert.Equal(t, 2, templates[0].Roles[0].RequiredCount)

	// A template without role rows still carries an empty, non-nil slice
	assert.NotNil(t, templates[1].Roles)
	assert.Empty(t, templates[1].Roles)
}

func rosterShiftFixture() ([]db.RosterShiftRow, []db.RosterShiftRoleRow, []db.RosterAssignmentRow) {
	shifts := []db.RosterShiftRow{
		{ID: "s1", RosterID: "r1", TemplateID: "t1", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "s2", RosterID: "r1", TemplateID: "t1", Date: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)},
	}
	roles := []db.RosterShiftRoleRow{
		{ID: "sr1", RosterShiftID: "s1", RoleID: "nurse", RoleName: "Nurse", RequiredCount: 2},
		{ID: "sr2", RosterShiftID: "s1", RoleID: "doctor", RoleName: "Doctor", RequiredCount: 1},
		{ID: "sr3", RosterShiftID: "s2", RoleID: "nurse", RoleName: "Nurse", RequiredCount: 2},
	}
	assignments := []db.RosterAssignmentRow{
		{RosterShiftRoleID: "sr1", PersonID: "alice"},
		{RosterShiftRoleID: "sr1", PersonID: "bob"},
		{RosterShiftRoleID: "sr3", PersonID: "carol"},
	}
	return shifts, roles, assignments
}

func TestRosterShifts_ExactNesting(t *testing.T) {
	shifts, roles, assignments := rosterShiftFixture()
	out := RosterShifts(shifts, roles, assignments)

	require.Len(t, out, 2)

	require.Len(t, out[0].Roles, 2)
	assert.Equal(t, []string{"alice", "bob"}, out[0].Roles[0].AssignedPersonIDs)
	assert.Empty(t, out[0].Roles[1].AssignedPersonIDs)
	assert.NotNil(t, out[0].Roles[1].AssignedPersonIDs)

	require.Len(t, out[1].Roles, 1)
	assert.Equal(t, []string{"carol"}, out[1].Roles[0].AssignedPersonIDs)
}

func TestRosterShifts_Idempotent(t *testing.T) {
	shifts, roles, assignments := rosterShiftFixture()

	first := RosterShifts(shifts, roles, assignments)
	second := RosterShifts(shifts, roles, assignments)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reassembly not deterministic (-first +second):\n%s", diff)
	}
}

func TestShifts_LegacyNesting(t *testing.T) {
	out := Shifts(
		[]db.ShiftRow{{ID: "s1", Name: "Cover", StartTime: "09:00", EndTime: "17:00"}},
		[]db.ShiftRoleRow{{ID: "sr1", ShiftID: "s1", RoleID: "nurse", RoleName: "Nurse", RequiredCount: 1}},
		[]db.ShiftAssignmentRow{{ShiftRoleID: "sr1", PersonID: "alice"}},
	)

	require.Len(t, out, 1)
	require.Len(t, out[0].Roles, 1)
	assert.Equal(t, []string{"alice"}, out[0].Roles[0].AssignedPersonIDs)
}

func TestLeaves_StatusMapped(t *testing.T) {
	leaves := Leaves([]db.LeaveRow{{ID: "l1", PersonID: "alice", Status: "approved"}})

	require.Len(t, leaves, 1)
	assert.Equal(t, model.LeaveApproved, leaves[0].Status)
}

func TestEmptyInputsYieldEmptySlices(t *testing.T) {
	assert.NotNil(t, People(nil))
	assert.NotNil(t, Roles(nil))
	assert.NotNil(t, Groups(nil, nil))
	assert.NotNil(t, Templates(nil, nil))
	assert.NotNil(t, Rosters(nil))
	assert.NotNil(t, RosterShifts(nil, nil, nil))
	assert.NotNil(t, Shifts(nil, nil, nil))
}
