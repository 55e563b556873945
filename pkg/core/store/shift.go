package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/assemble"
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
)

// NewShift carries the caller-supplied fields for a legacy standalone
// shift
type NewShift struct {
	Name      string
	Date      time.Time
	StartTime string
	EndTime   string
	Slots     []ShiftSlot
}

// ShiftStore owns the legacy standalone shifts, predating rosters and
// templates. New scheduling goes through RosterStore; this store keeps
// the old records readable and editable.
type ShiftStore struct {
	mu      sync.RWMutex
	gate    fetchGate
	shifts  []model.Shift
	lastErr string

	db     db.Database
	logger *zap.Logger
	subs   notifier
}

func NewShiftStore(database db.Database, logger *zap.Logger) *ShiftStore {
	return &ShiftStore{db: database, logger: logger}
}

func (s *ShiftStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// Fetch reloads shifts, role slots and assignments and reassembles them
func (s *ShiftStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	token := s.gate.begin()
	s.mu.Unlock()

	shiftRows, err := s.db.GetShifts(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	roleRows, err := s.db.GetShiftRoles(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	assignmentRows, err := s.db.GetShiftAssignments(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	shifts := assemble.Shifts(shiftRows, roleRows, assignmentRows)

	s.mu.Lock()
	if s.gate.stale(token) {
		s.mu.Unlock()
		return nil
	}
	s.shifts = shifts
	s.lastErr = ""
	s.mu.Unlock()

	s.subs.notify()
	return nil
}

func (s *ShiftStore) fetchFailed(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.logger.Error("failed to fetch shifts", zap.Error(err))
	return err
}

// Shifts returns the current snapshot
func (s *ShiftStore) Shifts() []model.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shifts
}

func (s *ShiftStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get finds a shift by id; the boolean is false when absent
func (s *ShiftStore) Get(id string) (model.Shift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sh := range s.shifts {
		if sh.ID == id {
			return sh, true
		}
	}
	return model.Shift{}, false
}

// ByDate returns the shifts falling on the given calendar date
func (s *ShiftStore) ByDate(date time.Time) []model.Shift {
	y, m, d := date.Date()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Shift
	for _, sh := range s.shifts {
		sy, sm, sd := sh.Date.Date()
		if sy == y && sm == m && sd == d {
			out = append(out, sh)
		}
	}
	return out
}

// Add inserts a shift with its role slots and any initial assignments,
// then re-fetches. Initial assignments need the slot ids generated by
// the role sync, so each assigned slot costs one extra lookup.
func (s *ShiftStore) Add(ctx context.Context, shift NewShift) error {
	row := db.ShiftRow{
		ID:        uuid.NewString(),
		Name:      shift.Name,
		Date:      shift.Date,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
	}
	if err := s.db.InsertShift(ctx, &row); err != nil {
		return err
	}

	if len(shift.Slots) > 0 {
		if err := s.db.SyncShiftRoles(ctx, row.ID, shiftRoleRows(row.ID, shift.Slots)); err != nil {
			return err
		}
		for _, slot := range shift.Slots {
			if len(slot.AssignedPersonIDs) == 0 {
				continue
			}
			slotID, err := s.db.GetShiftRoleID(ctx, row.ID, slot.RoleID)
			if err != nil {
				return err
			}
			for _, personID := range slot.AssignedPersonIDs {
				assignment := db.ShiftAssignmentRow{ShiftRoleID: slotID, PersonID: personID}
				if err := s.db.InsertShiftAssignment(ctx, assignment); err != nil {
					return err
				}
			}
		}
	}

	return s.Fetch(ctx)
}

// Update patches a shift, reconciles its role slots when slots is
// non-nil, and re-fetches. Assignments attached to kept slots survive.
func (s *ShiftStore) Update(ctx context.Context, id string, patch db.ShiftPatch, slots []ShiftSlot) error {
	if err := s.db.UpdateShift(ctx, id, patch); err != nil {
		return err
	}
	if slots != nil {
		if err := s.db.SyncShiftRoles(ctx, id, shiftRoleRows(id, slots)); err != nil {
			return err
		}
	}
	return s.Fetch(ctx)
}

// Delete removes a shift (slots and assignments cascade) and re-fetches
func (s *ShiftStore) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteShift(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Assign adds a person to a role slot and re-fetches
func (s *ShiftStore) Assign(ctx context.Context, roleEntryID, personID string) error {
	assignment := db.ShiftAssignmentRow{ShiftRoleID: roleEntryID, PersonID: personID}
	if err := s.db.InsertShiftAssignment(ctx, assignment); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Unassign removes a person from a role slot and re-fetches
func (s *ShiftStore) Unassign(ctx context.Context, roleEntryID, personID string) error {
	if err := s.db.DeleteShiftAssignment(ctx, roleEntryID, personID); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

func shiftRoleRows(shiftID string, slots []ShiftSlot) []db.ShiftRoleRow {
	rows := make([]db.ShiftRoleRow, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, db.ShiftRoleRow{
			ID:            uuid.NewString(),
			ShiftID:       shiftID,
			RoleID:        slot.RoleID,
			RequiredCount: requiredOrDefault(slot.RequiredCount),
		})
	}
	return rows
}
