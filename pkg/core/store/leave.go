package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/assemble"
	"github.com/rosterly/shiftroster/pkg/core/availability"
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
)

// ErrInvalidLeaveRange is returned when a leave's end date precedes its
// start date. An inverted range can never match an availability check, so
// it is rejected before any remote call.
var ErrInvalidLeaveRange = errors.New("leave end date precedes start date")

// NewLeave carries the caller-supplied fields for a leave record
type NewLeave struct {
	PersonID  string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    model.LeaveStatus
}

// LeaveStore owns the leaves collection
type LeaveStore struct {
	mu      sync.RWMutex
	gate    fetchGate
	leaves  []model.Leave
	lastErr string

	db     db.Database
	logger *zap.Logger
	subs   notifier
}

func NewLeaveStore(database db.Database, logger *zap.Logger) *LeaveStore {
	return &LeaveStore{db: database, logger: logger}
}

func (s *LeaveStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// Fetch reloads the whole leaves collection from the database
func (s *LeaveStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	token := s.gate.begin()
	s.mu.Unlock()

	rows, err := s.db.GetLeaves(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.logger.Error("failed to fetch leaves", zap.Error(err))
		return err
	}
	leaves := assemble.Leaves(rows)

	s.mu.Lock()
	if s.gate.stale(token) {
		s.mu.Unlock()
		return nil
	}
	s.leaves = leaves
	s.lastErr = ""
	s.mu.Unlock()

	s.subs.notify()
	return nil
}

// Leaves returns the current snapshot
func (s *LeaveStore) Leaves() []model.Leave {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaves
}

func (s *LeaveStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get finds a leave by id; the boolean is false when absent
func (s *LeaveStore) Get(id string) (model.Leave, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leaves {
		if l.ID == id {
			return l, true
		}
	}
	return model.Leave{}, false
}

// ByPerson returns the person's leaves in fetch order
func (s *LeaveStore) ByPerson(personID string) []model.Leave {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Leave
	for _, l := range s.leaves {
		if l.PersonID == personID {
			out = append(out, l)
		}
	}
	return out
}

// IsPersonOnLeave reports whether the person has an approved leave
// containing the given date, using the current snapshot.
func (s *LeaveStore) IsPersonOnLeave(personID string, date time.Time) bool {
	return availability.IsOnLeave(s.Leaves(), personID, date)
}

// Add inserts a new leave and re-fetches the collection
func (s *LeaveStore) Add(ctx context.Context, leave NewLeave) error {
	if leave.EndDate.Before(leave.StartDate) {
		return ErrInvalidLeaveRange
	}
	status := leave.Status
	if status == "" {
		status = model.LeavePending
	}
	if !status.IsValid() {
		return fmt.Errorf("invalid leave status %q", status)
	}

	row := db.LeaveRow{
		ID:        uuid.NewString(),
		PersonID:  leave.PersonID,
		StartDate: leave.StartDate,
		EndDate:   leave.EndDate,
		Reason:    leave.Reason,
		Status:    string(status),
	}
	if err := s.db.InsertLeave(ctx, &row); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Update patches a leave and re-fetches the collection. The resulting
// date range (patched fields combined with stored ones) must be valid.
func (s *LeaveStore) Update(ctx context.Context, id string, patch db.LeavePatch) error {
	start, end := patch.StartDate, patch.EndDate
	if stored, ok := s.Get(id); ok {
		if start == nil {
			start = &stored.StartDate
		}
		if end == nil {
			end = &stored.EndDate
		}
	}
	if start != nil && end != nil && end.Before(*start) {
		return ErrInvalidLeaveRange
	}
	if patch.Status != nil && !model.LeaveStatus(*patch.Status).IsValid() {
		return fmt.Errorf("invalid leave status %q", *patch.Status)
	}

	if err := s.db.UpdateLeave(ctx, id, patch); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Delete removes a leave and re-fetches the collection
func (s *LeaveStore) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteLeave(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Approve marks a leave as approved
func (s *LeaveStore) Approve(ctx context.Context, id string) error {
	status := string(model.LeaveApproved)
	return s.Update(ctx, id, db.LeavePatch{Status: &status})
}

// Reject marks a leave as rejected
func (s *LeaveStore) Reject(ctx context.Context, id string) error {
	status := string(model.LeaveRejected)
	return s.Update(ctx, id, db.LeavePatch{Status: &status})
}
