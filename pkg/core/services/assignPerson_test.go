package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

// mockAssignDB backs the people, leave and roster stores for assignment
// tests; the embedded interface covers the operations these tests never
// reach.
type mockAssignDB struct {
	db.Database
	people      []db.PersonRow
	leaves      []db.LeaveRow
	rosters     []db.RosterRow
	shifts      []db.RosterShiftRow
	roles       []db.RosterShiftRoleRow
	assignments []db.RosterAssignmentRow
}

func (m *mockAssignDB) GetPeople(ctx context.Context) ([]db.PersonRow, error) { return m.people, nil }
func (m *mockAssignDB) GetLeaves(ctx context.Context) ([]db.LeaveRow, error)  { return m.leaves, nil }
func (m *mockAssignDB) GetRosters(ctx context.Context) ([]db.RosterRow, error) {
	return m.rosters, nil
}
func (m *mockAssignDB) GetRosterShifts(ctx context.Context) ([]db.RosterShiftRow, error) {
	return m.shifts, nil
}
func (m *mockAssignDB) GetRosterShiftRoles(ctx context.Context) ([]db.RosterShiftRoleRow, error) {
	return m.roles, nil
}
func (m *mockAssignDB) GetRosterAssignments(ctx context.Context) ([]db.RosterAssignmentRow, error) {
	return m.assignments, nil
}

func (m *mockAssignDB) InsertRosterAssignment(ctx context.Context, assignment db.RosterAssignmentRow) error {
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *mockAssignDB) DeleteRosterAssignment(ctx context.Context, roleEntryID, personID string) error {
	kept := m.assignments[:0]
	for _, a := range m.assignments {
		if a.RosterShiftRoleID == roleEntryID && a.PersonID == personID {
			continue
		}
		kept = append(kept, a)
	}
	m.assignments = kept
	return nil
}

func assignFixture(t *testing.T) (*store.Registry, *mockAssignDB) {
	t.Helper()
	shiftDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	mock := &mockAssignDB{
		people: []db.PersonRow{
			{ID: "alice", Name: "Alice", RoleIDs: []string{"nurse"}},
			{ID: "bob", Name: "Bob", RoleIDs: []string{"doctor"}},
			{ID: "carol", Name: "Carol", RoleIDs: []string{"nurse"}},
		},
		leaves: []db.LeaveRow{
			{ID: "l1", PersonID: "carol",
				StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
				Status:    "approved"},
		},
		rosters: []db.RosterRow{{ID: "r1", Name: "March"}},
		shifts:  []db.RosterShiftRow{{ID: "s1", RosterID: "r1", Date: shiftDate}},
		roles:   []db.RosterShiftRoleRow{{ID: "sr1", RosterShiftID: "s1", RoleID: "nurse", RoleName: "Nurse", RequiredCount: 2}},
	}

	reg := store.NewRegistry(mock, nil, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, reg.People.Fetch(ctx))
	require.NoError(t, reg.Leaves.Fetch(ctx))
	require.NoError(t, reg.Rosters.Fetch(ctx))
	return reg, mock
}

func TestAssignPerson_Success(t *testing.T) {
	reg, mock := assignFixture(t)

	err := AssignPerson(context.Background(), reg, zap.NewNop(), "s1", "sr1", "alice")
	require.NoError(t, err)

	require.Len(t, mock.assignments, 1)
	assert.Equal(t, "alice", mock.assignments[0].PersonID)

	shift, ok := reg.Rosters.GetShift("s1")
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, shift.Roles[0].AssignedPersonIDs)
}

func TestAssignPerson_RejectsNonHolder(t *testing.T) {
	reg, mock := assignFixture(t)

	err := AssignPerson(context.Background(), reg, zap.NewNop(), "s1", "sr1", "bob")
	assert.ErrorIs(t, err, ErrRoleNotHeld)
	assert.Empty(t, mock.assignments)
}

func TestAssignPerson_RejectsPersonOnLeave(t *testing.T) {
	reg, mock := assignFixture(t)

	err := AssignPerson(context.Background(), reg, zap.NewNop(), "s1", "sr1", "carol")
	assert.ErrorIs(t, err, ErrPersonOnLeave)
	assert.Empty(t, mock.assignments)
}

func TestAssignPerson_RejectsDuplicate(t *testing.T) {
	reg, _ := assignFixture(t)

	require.NoError(t, AssignPerson(context.Background(), reg, zap.NewNop(), "s1", "sr1", "alice"))
	err := AssignPerson(context.Background(), reg, zap.NewNop(), "s1", "sr1", "alice")
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssignThenRemoveRestoresEmpty(t *testing.T) {
	reg, _ := assignFixture(t)
	ctx := context.Background()

	require.NoError(t, AssignPerson(ctx, reg, zap.NewNop(), "s1", "sr1", "alice"))
	require.NoError(t, RemovePerson(ctx, reg, zap.NewNop(), "s1", "sr1", "alice"))

	shift, ok := reg.Rosters.GetShift("s1")
	require.True(t, ok)
	assert.Empty(t, shift.Roles[0].AssignedPersonIDs)
	assert.NotNil(t, shift.Roles[0].AssignedPersonIDs)
}

func TestRemovePerson_NotAssigned(t *testing.T) {
	reg, _ := assignFixture(t)

	err := RemovePerson(context.Background(), reg, zap.NewNop(), "s1", "sr1", "alice")
	assert.Error(t, err)
}

func TestEligibleForSlot(t *testing.T) {
	reg, _ := assignFixture(t)
	ctx := context.Background()

	// Alice and Carol hold the role; Carol is on leave for the date
	people, err := EligibleForSlot(reg, "s1", "sr1")
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "alice", people[0].ID)

	// Once assigned, Alice drops out too
	require.NoError(t, AssignPerson(ctx, reg, zap.NewNop(), "s1", "sr1", "alice"))
	people, err = EligibleForSlot(reg, "s1", "sr1")
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestAssignPerson_UnknownShift(t *testing.T) {
	reg, _ := assignFixture(t)

	err := AssignPerson(context.Background(), reg, zap.NewNop(), "missing", "sr1", "alice")
	assert.Error(t, err)
}
