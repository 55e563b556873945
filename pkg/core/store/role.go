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

// NewRole carries the caller-supplied fields for a role record
type NewRole struct {
	Name        string
	Description string
}

// RoleStore owns the roles collection
type RoleStore struct {
	mu      sync.RWMutex
	gate    fetchGate
	roles   []model.Role
	lastErr string

	db     db.Database
	logger *zap.Logger
	subs   notifier
}

func NewRoleStore(database db.Database, logger *zap.Logger) *RoleStore {
	return &RoleStore{db: database, logger: logger}
}

func (s *RoleStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// Fetch reloads the whole roles collection from the database
func (s *RoleStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	token := s.gate.begin()
	s.mu.Unlock()

	rows, err := s.db.GetRoles(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.logger.Error("failed to fetch roles", zap.Error(err))
		return err
	}
	roles := assemble.Roles(rows)

	s.mu.Lock()
	if s.gate.stale(token) {
		s.mu.Unlock()
		return nil
	}
	s.roles = roles
	s.lastErr = ""
	s.mu.Unlock()

	s.subs.notify()
	return nil
}

// Roles returns the current snapshot
func (s *RoleStore) Roles() []model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles
}

func (s *RoleStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get finds a role by id; the boolean is false when absent
func (s *RoleStore) Get(id string) (model.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.ID == id {
			return r, true
		}
	}
	return model.Role{}, false
}

// FindByName finds a role by exact name; the boolean is false when absent
func (s *RoleStore) FindByName(name string) (model.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.Name == name {
			return r, true
		}
	}
	return model.Role{}, false
}

// Add inserts a new role and re-fetches the collection
func (s *RoleStore) Add(ctx context.Context, role NewRole) error {
	row := db.RoleRow{
		ID:          uuid.NewString(),
		Name:        role.Name,
		Description: role.Description,
	}
	if err := s.db.InsertRole(ctx, &row); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Update patches a role and re-fetches the collection
func (s *RoleStore) Update(ctx context.Context, id string, patch db.RolePatch) error {
	if err := s.db.UpdateRole(ctx, id, patch); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Delete removes a role and re-fetches the collection
func (s *RoleStore) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteRole(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}
