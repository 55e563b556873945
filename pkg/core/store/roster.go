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
	"github.com/rosterly/shiftroster/pkg/snapshot"
)

const rosterSnapshotKey = "rosters"

// NewRoster carries the caller-supplied fields for a roster record
type NewRoster struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// NewRosterShift carries the caller-supplied fields for a roster shift.
// Slots usually come from a template via services.InstantiateShift.
type NewRosterShift struct {
	RosterID   string
	TemplateID string
	Date       time.Time
	Slots      []ShiftSlot
}

// rosterSnapshot is the persisted form of the store state
type rosterSnapshot struct {
	Rosters []model.Roster      `json:"rosters"`
	Shifts  []model.RosterShift `json:"shifts"`
}

// RosterStore owns rosters and their shifts. Its last snapshot is
// persisted locally so a restart can show rosters before the first
// remote fetch completes.
type RosterStore struct {
	mu      sync.RWMutex
	gate    fetchGate
	rosters []model.Roster
	shifts  []model.RosterShift
	lastErr string

	db     db.Database
	cache  *snapshot.Cache
	logger *zap.Logger
	subs   notifier
}

// NewRosterStore creates the store; cache may be nil to disable
// snapshot persistence.
func NewRosterStore(database db.Database, cache *snapshot.Cache, logger *zap.Logger) *RosterStore {
	return &RosterStore{db: database, cache: cache, logger: logger}
}

func (s *RosterStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// LoadPersisted publishes the locally persisted snapshot, if any
func (s *RosterStore) LoadPersisted() {
	if s.cache == nil {
		return
	}
	var snap rosterSnapshot
	ok, err := s.cache.Load(rosterSnapshotKey, &snap)
	if err != nil {
		s.logger.Warn("failed to load roster snapshot", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	s.mu.Lock()
	s.rosters = snap.Rosters
	s.shifts = snap.Shifts
	s.mu.Unlock()
	s.subs.notify()
}

// Fetch reloads rosters, shifts, role slots and assignments, and
// reassembles the nested structures. Any single failed read aborts the
// whole fetch and leaves the previous snapshot in place.
func (s *RosterStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	token := s.gate.begin()
	s.mu.Unlock()

	rosterRows, err := s.db.GetRosters(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	shiftRows, err := s.db.GetRosterShifts(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	roleRows, err := s.db.GetRosterShiftRoles(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	assignmentRows, err := s.db.GetRosterAssignments(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}

	rosters := assemble.Rosters(rosterRows)
	shifts := assemble.RosterShifts(shiftRows, roleRows, assignmentRows)

	s.mu.Lock()
	if s.gate.stale(token) {
		s.mu.Unlock()
		return nil
	}
	s.rosters = rosters
	s.shifts = shifts
	s.lastErr = ""
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Save(rosterSnapshotKey, rosterSnapshot{Rosters: rosters, Shifts: shifts}); err != nil {
			s.logger.Warn("failed to persist roster snapshot", zap.Error(err))
		}
	}

	s.subs.notify()
	return nil
}

func (s *RosterStore) fetchFailed(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.logger.Error("failed to fetch rosters", zap.Error(err))
	return err
}

// Rosters returns the current roster snapshot
func (s *RosterStore) Rosters() []model.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rosters
}

// Shifts returns the current roster shift snapshot across all rosters
func (s *RosterStore) Shifts() []model.RosterShift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shifts
}

func (s *RosterStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get finds a roster by id; the boolean is false when absent
func (s *RosterStore) Get(id string) (model.Roster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rosters {
		if r.ID == id {
			return r, true
		}
	}
	return model.Roster{}, false
}

// GetShift finds a roster shift by id; the boolean is false when absent
func (s *RosterStore) GetShift(id string) (model.RosterShift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sh := range s.shifts {
		if sh.ID == id {
			return sh, true
		}
	}
	return model.RosterShift{}, false
}

// ShiftsFor returns the shifts belonging to one roster
func (s *RosterStore) ShiftsFor(rosterID string) []model.RosterShift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.RosterShift
	for _, sh := range s.shifts {
		if sh.RosterID == rosterID {
			out = append(out, sh)
		}
	}
	return out
}

// AddRoster inserts a roster and re-fetches the domain
func (s *RosterStore) AddRoster(ctx context.Context, roster NewRoster) error {
	row := db.RosterRow{
		ID:        uuid.NewString(),
		Name:      roster.Name,
		StartDate: roster.StartDate,
		EndDate:   roster.EndDate,
	}
	if err := s.db.InsertRoster(ctx, &row); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// UpdateRoster patches a roster and re-fetches the domain
func (s *RosterStore) UpdateRoster(ctx context.Context, id string, patch db.RosterPatch) error {
	if err := s.db.UpdateRoster(ctx, id, patch); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// DeleteRoster removes a roster (shifts cascade) and re-fetches
func (s *RosterStore) DeleteRoster(ctx context.Context, id string) error {
	if err := s.db.DeleteRoster(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// AddShift inserts a roster shift with its role slots and any initial
// assignments, then re-fetches the domain. Assignments need the slot ids
// generated by the role sync, so each assigned slot costs one extra
// lookup round trip.
func (s *RosterStore) AddShift(ctx context.Context, shift NewRosterShift) error {
	row := db.RosterShiftRow{
		ID:         uuid.NewString(),
		RosterID:   shift.RosterID,
		TemplateID: shift.TemplateID,
		Date:       shift.Date,
	}
	if err := s.db.InsertRosterShift(ctx, &row); err != nil {
		return err
	}

	if len(shift.Slots) > 0 {
		roles := make([]db.RosterShiftRoleRow, 0, len(shift.Slots))
		for _, slot := range shift.Slots {
			roles = append(roles, db.RosterShiftRoleRow{
				ID:            uuid.NewString(),
				RosterShiftID: row.ID,
				RoleID:        slot.RoleID,
				RequiredCount: requiredOrDefault(slot.RequiredCount),
			})
		}
		if err := s.db.SyncRosterShiftRoles(ctx, row.ID, roles); err != nil {
			return err
		}

		for _, slot := range shift.Slots {
			if len(slot.AssignedPersonIDs) == 0 {
				continue
			}
			slotID, err := s.db.GetRosterShiftRoleID(ctx, row.ID, slot.RoleID)
			if err != nil {
				return err
			}
			for _, personID := range slot.AssignedPersonIDs {
				assignment := db.RosterAssignmentRow{RosterShiftRoleID: slotID, PersonID: personID}
				if err := s.db.InsertRosterAssignment(ctx, assignment); err != nil {
					return err
				}
			}
		}
	}

	return s.Fetch(ctx)
}

// UpdateShift patches a roster shift's date and, when slots is non-nil,
// reconciles its role slots; assignments attached to kept slots survive.
func (s *RosterStore) UpdateShift(ctx context.Context, id string, date *time.Time, slots []ShiftSlot) error {
	if err := s.db.UpdateRosterShift(ctx, id, db.RosterShiftPatch{Date: date}); err != nil {
		return err
	}
	if slots != nil {
		roles := make([]db.RosterShiftRoleRow, 0, len(slots))
		for _, slot := range slots {
			roles = append(roles, db.RosterShiftRoleRow{
				ID:            uuid.NewString(),
				RosterShiftID: id,
				RoleID:        slot.RoleID,
				RequiredCount: requiredOrDefault(slot.RequiredCount),
			})
		}
		if err := s.db.SyncRosterShiftRoles(ctx, id, roles); err != nil {
			return err
		}
	}
	return s.Fetch(ctx)
}

// DeleteShift removes a roster shift (slots and assignments cascade) and
// re-fetches
func (s *RosterStore) DeleteShift(ctx context.Context, id string) error {
	if err := s.db.DeleteRosterShift(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Assign adds a person to a role slot and re-fetches
func (s *RosterStore) Assign(ctx context.Context, roleEntryID, personID string) error {
	assignment := db.RosterAssignmentRow{RosterShiftRoleID: roleEntryID, PersonID: personID}
	if err := s.db.InsertRosterAssignment(ctx, assignment); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Unassign removes a person from a role slot and re-fetches
func (s *RosterStore) Unassign(ctx context.Context, roleEntryID, personID string) error {
	if err := s.db.DeleteRosterAssignment(ctx, roleEntryID, personID); err != nil {
		return err
	}
	return s.Fetch(ctx)
}
