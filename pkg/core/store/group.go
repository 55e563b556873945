package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/assemble"
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
)

// NewGroup carries the caller-supplied fields for a group record
type NewGroup struct {
	Name        string
	Description string
	PersonIDs   []string
}

// GroupStore owns the groups collection and group memberships
type GroupStore struct {
	mu      sync.RWMutex
	gate    fetchGate
	groups  []model.Group
	lastErr string

	db     db.Database
	logger *zap.Logger
	subs   notifier
}

func NewGroupStore(database db.Database, logger *zap.Logger) *GroupStore {
	return &GroupStore{db: database, logger: logger}
}

func (s *GroupStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// Fetch reloads groups and memberships and reassembles them
func (s *GroupStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	token := s.gate.begin()
	s.mu.Unlock()

	groupRows, err := s.db.GetGroups(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	memberRows, err := s.db.GetGroupMembers(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	groups := assemble.Groups(groupRows, memberRows)

	s.mu.Lock()
	if s.gate.stale(token) {
		s.mu.Unlock()
		return nil
	}
	s.groups = groups
	s.lastErr = ""
	s.mu.Unlock()

	s.subs.notify()
	return nil
}

func (s *GroupStore) fetchFailed(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.logger.Error("failed to fetch groups", zap.Error(err))
	return err
}

// Groups returns the current snapshot
func (s *GroupStore) Groups() []model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups
}

func (s *GroupStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get finds a group by id; the boolean is false when absent
func (s *GroupStore) Get(id string) (model.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return model.Group{}, false
}

// Add inserts a new group with its members and re-fetches the collection
func (s *GroupStore) Add(ctx context.Context, group NewGroup) error {
	row := db.GroupRow{
		ID:          uuid.NewString(),
		Name:        group.Name,
		Description: group.Description,
	}
	if err := s.db.InsertGroup(ctx, &row); err != nil {
		return err
	}
	if len(group.PersonIDs) > 0 {
		if err := s.db.SyncGroupMembers(ctx, row.ID, group.PersonIDs); err != nil {
			return err
		}
	}
	return s.Fetch(ctx)
}

// Update patches a group, reconciles its member set when personIDs is
// non-nil, and re-fetches the collection.
func (s *GroupStore) Update(ctx context.Context, id string, patch db.GroupPatch, personIDs []string) error {
	if err := s.db.UpdateGroup(ctx, id, patch); err != nil {
		return err
	}
	if personIDs != nil {
		if err := s.db.SyncGroupMembers(ctx, id, personIDs); err != nil {
			return err
		}
	}
	return s.Fetch(ctx)
}

// Delete removes a group and re-fetches the collection
func (s *GroupStore) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteGroup(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}
