package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
)

// mockLeaveDB implements the leave operations; the embedded interface
// covers the rest and panics if touched.
type mockLeaveDB struct {
	db.Database
	leaves  []db.LeaveRow
	getErr  error
	updated map[string]db.LeavePatch
}

func (m *mockLeaveDB) GetLeaves(ctx context.Context) ([]db.LeaveRow, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.leaves, nil
}

func (m *mockLeaveDB) InsertLeave(ctx context.Context, leave *db.LeaveRow) error {
	m.leaves = append(m.leaves, *leave)
	return nil
}

func (m *mockLeaveDB) UpdateLeave(ctx context.Context, id string, patch db.LeavePatch) error {
	if m.updated == nil {
		m.updated = make(map[string]db.LeavePatch)
	}
	m.updated[id] = patch
	for i := range m.leaves {
		if m.leaves[i].ID != id {
			continue
		}
		if patch.StartDate != nil {
			m.leaves[i].StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			m.leaves[i].EndDate = *patch.EndDate
		}
		if patch.Status != nil {
			m.leaves[i].Status = *patch.Status
		}
		if patch.Reason != nil {
			m.leaves[i].Reason = *patch.Reason
		}
	}
	return nil
}

func (m *mockLeaveDB) DeleteLeave(ctx context.Context, id string) error {
	kept := m.leaves[:0]
	for _, l := range m.leaves {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.leaves = kept
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveStore_FetchPublishesSnapshot(t *testing.T) {
	mock := &mockLeaveDB{leaves: []db.LeaveRow{
		{ID: "l1", PersonID: "alice", StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 14), Status: "approved"},
	}}
	s := NewLeaveStore(mock, zap.NewNop())

	notified := false
	s.Subscribe(func() { notified = true })

	require.NoError(t, s.Fetch(context.Background()))
	require.Len(t, s.Leaves(), 1)
	assert.Equal(t, model.LeaveApproved, s.Leaves()[0].Status)
	assert.True(t, notified)
	assert.Empty(t, s.LastError())
}

func TestLeaveStore_FetchFailureKeepsSnapshot(t *testing.T) {
	mock := &mockLeaveDB{leaves: []db.LeaveRow{{ID: "l1", PersonID: "alice"}}}
	s := NewLeaveStore(mock, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	mock.getErr = errors.New("connection reset")
	err := s.Fetch(context.Background())
	require.Error(t, err)

	assert.Len(t, s.Leaves(), 1, "previous snapshot stays published")
	assert.Equal(t, "connection reset", s.LastError())
}

func TestLeaveStore_AddRejectsInvertedRange(t *testing.T) {
	mock := &mockLeaveDB{}
	s := NewLeaveStore(mock, zap.NewNop())

	err := s.Add(context.Background(), NewLeave{
		PersonID:  "alice",
		StartDate: day(2025, 3, 14),
		EndDate:   day(2025, 3, 10),
	})

	assert.ErrorIs(t, err, ErrInvalidLeaveRange)
	assert.Empty(t, mock.leaves, "nothing written on validation failure")
}

func TestLeaveStore_AddDefaultsToPending(t *testing.T) {
	mock := &mockLeaveDB{}
	s := NewLeaveStore(mock, zap.NewNop())

	require.NoError(t, s.Add(context.Background(), NewLeave{
		PersonID:  "alice",
		StartDate: day(2025, 3, 10),
		EndDate:   day(2025, 3, 14),
	}))

	require.Len(t, mock.leaves, 1)
	assert.Equal(t, "pending", mock.leaves[0].Status)
	assert.NotEmpty(t, mock.leaves[0].ID, "id generated client-side")
}

func TestLeaveStore_AddRejectsUnknownStatus(t *testing.T) {
	s := NewLeaveStore(&mockLeaveDB{}, zap.NewNop())

	err := s.Add(context.Background(), NewLeave{
		PersonID:  "alice",
		StartDate: day(2025, 3, 10),
		EndDate:   day(2025, 3, 14),
		Status:    "maybe",
	})
	assert.Error(t, err)
}

func TestLeaveStore_UpdateValidatesCombinedRange(t *testing.T) {
	mock := &mockLeaveDB{leaves: []db.LeaveRow{
		{ID: "l1", PersonID: "alice", StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 14), Status: "pending"},
	}}
	s := NewLeaveStore(mock, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	// Moving only the end before the stored start must fail
	badEnd := day(2025, 3, 5)
	err := s.Update(context.Background(), "l1", db.LeavePatch{EndDate: &badEnd})
	assert.ErrorIs(t, err, ErrInvalidLeaveRange)

	// Moving both dates together is fine
	newStart := day(2025, 4, 1)
	newEnd := day(2025, 4, 2)
	require.NoError(t, s.Update(context.Background(), "l1", db.LeavePatch{StartDate: &newStart, EndDate: &newEnd}))
}

func TestLeaveStore_ApproveAndReject(t *testing.T) {
	mock := &mockLeaveDB{leaves: []db.LeaveRow{
		{ID: "l1", PersonID: "alice", StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 14), Status: "pending"},
	}}
	s := NewLeaveStore(mock, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, s.Approve(context.Background(), "l1"))
	assert.Equal(t, "approved", mock.leaves[0].Status)
	assert.True(t, s.IsPersonOnLeave("alice", day(2025, 3, 12)))

	require.NoError(t, s.Reject(context.Background(), "l1"))
	assert.Equal(t, "rejected", mock.leaves[0].Status)
	assert.False(t, s.IsPersonOnLeave("alice", day(2025, 3, 12)))
}

func TestLeaveStore_ByPerson(t *testing.T) {
	mock := &mockLeaveDB{leaves: []db.LeaveRow{
		{ID: "l1", PersonID: "alice"},
		{ID: "l2", PersonID: "bob"},
		{ID: "l3", PersonID: "alice"},
	}}
	s := NewLeaveStore(mock, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	assert.Len(t, s.ByPerson("alice"), 2)
	assert.Len(t, s.ByPerson("bob"), 1)
	assert.Empty(t, s.ByPerson("nobody"))
}
