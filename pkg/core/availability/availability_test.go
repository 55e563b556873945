package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterly/shiftroster/pkg/core/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsOnLeave_InclusiveRange(t *testing.T) {
	leaves := []model.Leave{
		{ID: "l1", PersonID: "alice", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Status: model.LeaveApproved},
	}

	assert.False(t, IsOnLeave(leaves, "alice", date(2025, 3, 9)))
	assert.True(t, IsOnLeave(leaves, "alice", date(2025, 3, 10)), "start date is inclusive")
	assert.True(t, IsOnLeave(leaves, "alice", date(2025, 3, 12)))
	assert.True(t, IsOnLeave(leaves, "alice", date(2025, 3, 14)), "end date is inclusive")
	assert.False(t, IsOnLeave(leaves, "alice", date(2025, 3, 15)))
}

func TestIsOnLeave_TimeOfDayIgnored(t *testing.T) {
	leaves := []model.Leave{
		{
			ID:        "l1",
			PersonID:  "alice",
			StartDate: time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 3, 14, 0, 15, 0, 0, time.UTC),
			Status:    model.LeaveApproved,
		},
	}

	// Late on the end date still counts as on leave
	assert.True(t, IsOnLeave(leaves, "alice", time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)))
	// Early on the start date too
	assert.True(t, IsOnLeave(leaves, "alice", time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)))
}

func TestIsOnLeave_OnlyApprovedCounts(t *testing.T) {
	day := date(2025, 3, 12)
	for _, status := range []model.LeaveStatus{model.LeavePending, model.LeaveRejected} {
		leaves := []model.Leave{
			{ID: "l1", PersonID: "alice", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Status: status},
		}
		assert.False(t, IsOnLeave(leaves, "alice", day), "status %s must not count", status)
	}
}

func TestIsOnLeave_UnknownPerson(t *testing.T) {
	leaves := []model.Leave{
		{ID: "l1", PersonID: "alice", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Status: model.LeaveApproved},
	}
	assert.False(t, IsOnLeave(leaves, "nobody", date(2025, 3, 12)))
	assert.False(t, IsOnLeave(nil, "alice", date(2025, 3, 12)))
}

func TestLeaveStatus_Current(t *testing.T) {
	leaves := []model.Leave{
		{ID: "l1", PersonID: "alice", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Status: model.LeaveApproved},
	}

	status, rng := LeaveStatus(leaves, "alice", date(2025, 3, 12))
	assert.Equal(t, StatusCurrent, status)
	require.NotNil(t, rng)
	assert.Equal(t, date(2025, 3, 10), rng.Start)
	assert.Equal(t, date(2025, 3, 14), rng.End)
}

func TestLeaveStatus_UpcomingPicksNearest(t *testing.T) {
	leaves := []model.Leave{
		// Deliberately out of order: the later leave listed first
		{ID: "l2", PersonID: "alice", StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 5), Status: model.LeaveApproved},
		{ID: "l1", PersonID: "alice", StartDate: date(2025, 4, 1), EndDate: date(2025, 4, 3), Status: model.LeaveApproved},
	}

	status, rng := LeaveStatus(leaves, "alice", date(2025, 3, 12))
	assert.Equal(t, StatusUpcoming, status)
	require.NotNil(t, rng)
	assert.Equal(t, date(2025, 4, 1), rng.Start, "nearest future leave wins regardless of input order")
}

func TestLeaveStatus_PastLeavesIgnored(t *testing.T) {
	leaves := []model.Leave{
		{ID: "l1", PersonID: "alice", StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 5), Status: model.LeaveApproved},
	}

	status, rng := LeaveStatus(leaves, "alice", date(2025, 3, 12))
	assert.Equal(t, StatusNone, status)
	assert.Nil(t, rng)
}

func TestLeaveStatus_PendingIgnored(t *testing.T) {
	leaves := []model.Leave{
		{ID: "l1", PersonID: "alice", StartDate: date(2025, 4, 1), EndDate: date(2025, 4, 3), Status: model.LeavePending},
	}

	status, rng := LeaveStatus(leaves, "alice", date(2025, 3, 12))
	assert.Equal(t, StatusNone, status)
	assert.Nil(t, rng)
}

func TestEligiblePeople(t *testing.T) {
	people := []model.Person{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
	}
	leaves := []model.Leave{
		{ID: "l1", PersonID: "alice", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Status: model.LeaveApproved},
	}

	eligible := EligiblePeople(people, leaves, date(2025, 3, 12))
	require.Len(t, eligible, 1)
	assert.Equal(t, "bob", eligible[0].ID)

	// Outside the leave range everyone is eligible
	eligible = EligiblePeople(people, leaves, date(2025, 3, 20))
	assert.Len(t, eligible, 2)
}

func TestEligibleForRole(t *testing.T) {
	people := []model.Person{
		{ID: "alice", Name: "Alice", RoleIDs: []string{"nurse"}},
		{ID: "bob", Name: "Bob", RoleIDs: []string{"nurse"}},
		{ID: "carol", Name: "Carol", RoleIDs: []string{"doctor"}},
		{ID: "dave", Name: "Dave", RoleIDs: []string{"nurse"}},
	}
	leaves := []model.Leave{
		{ID: "l1", PersonID: "dave", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Status: model.LeaveApproved},
	}

	eligible := EligibleForRole(people, leaves, "nurse", []string{"bob"}, date(2025, 3, 12))

	// Bob is already assigned, Carol lacks the role, Dave is on leave
	require.Len(t, eligible, 1)
	assert.Equal(t, "alice", eligible[0].ID)
}

func TestEligibleForRole_EmptyInputs(t *testing.T) {
	assert.Empty(t, EligibleForRole(nil, nil, "nurse", nil, date(2025, 3, 12)))
	assert.NotNil(t, EligibleForRole(nil, nil, "nurse", nil, date(2025, 3, 12)))
}
