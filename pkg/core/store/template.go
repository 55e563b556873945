package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/assemble"
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
	"github.com/rosterly/shiftroster/pkg/snapshot"
)

const templateSnapshotKey = "shift-templates"

// NewTemplate carries the caller-supplied fields for a shift template
type NewTemplate struct {
	Name      string
	StartTime string
	EndTime   string
	Roles     []RoleRequirement
}

// TemplateStore owns the shift template collection. Its last snapshot is
// persisted locally so a restart can show templates before the first
// remote fetch completes.
type TemplateStore struct {
	mu        sync.RWMutex
	gate      fetchGate
	templates []model.ShiftTemplate
	lastErr   string

	db     db.Database
	cache  *snapshot.Cache
	logger *zap.Logger
	subs   notifier
}

// NewTemplateStore creates the store; cache may be nil to disable
// snapshot persistence.
func NewTemplateStore(database db.Database, cache *snapshot.Cache, logger *zap.Logger) *TemplateStore {
	return &TemplateStore{db: database, cache: cache, logger: logger}
}

func (s *TemplateStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// LoadPersisted publishes the locally persisted snapshot, if any. The
// next successful fetch overwrites it unconditionally.
func (s *TemplateStore) LoadPersisted() {
	if s.cache == nil {
		return
	}
	var templates []model.ShiftTemplate
	ok, err := s.cache.Load(templateSnapshotKey, &templates)
	if err != nil {
		s.logger.Warn("failed to load template snapshot", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	s.mu.Lock()
	s.templates = templates
	s.mu.Unlock()
	s.subs.notify()
}

// Fetch reloads templates and their role entries and reassembles them
func (s *TemplateStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	token := s.gate.begin()
	s.mu.Unlock()

	templateRows, err := s.db.GetTemplates(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	roleRows, err := s.db.GetTemplateRoles(ctx)
	if err != nil {
		return s.fetchFailed(err)
	}
	templates := assemble.Templates(templateRows, roleRows)

	s.mu.Lock()
	if s.gate.stale(token) {
		s.mu.Unlock()
		return nil
	}
	s.templates = templates
	s.lastErr = ""
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Save(templateSnapshotKey, templates); err != nil {
			s.logger.Warn("failed to persist template snapshot", zap.Error(err))
		}
	}

	s.subs.notify()
	return nil
}

func (s *TemplateStore) fetchFailed(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.logger.Error("failed to fetch templates", zap.Error(err))
	return err
}

// Templates returns the current snapshot
func (s *TemplateStore) Templates() []model.ShiftTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates
}

func (s *TemplateStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get finds a template by id; the boolean is false when absent
func (s *TemplateStore) Get(id string) (model.ShiftTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return model.ShiftTemplate{}, false
}

// FindByName finds a template by exact name; the boolean is false when
// absent
func (s *TemplateStore) FindByName(name string) (model.ShiftTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.Name == name {
			return t, true
		}
	}
	return model.ShiftTemplate{}, false
}

// Add inserts a template with its role entries and re-fetches
func (s *TemplateStore) Add(ctx context.Context, template NewTemplate) error {
	row := db.TemplateRow{
		ID:        uuid.NewString(),
		Name:      template.Name,
		StartTime: template.StartTime,
		EndTime:   template.EndTime,
	}
	if err := s.db.InsertTemplate(ctx, &row); err != nil {
		return err
	}
	if len(template.Roles) > 0 {
		if err := s.db.SyncTemplateRoles(ctx, row.ID, templateRoleRows(row.ID, template.Roles)); err != nil {
			return err
		}
	}
	return s.Fetch(ctx)
}

// Update patches a template, reconciles its role entries when roles is
// non-nil, and re-fetches.
func (s *TemplateStore) Update(ctx context.Context, id string, patch db.TemplatePatch, roles []RoleRequirement) error {
	if err := s.db.UpdateTemplate(ctx, id, patch); err != nil {
		return err
	}
	if roles != nil {
		if err := s.db.SyncTemplateRoles(ctx, id, templateRoleRows(id, roles)); err != nil {
			return err
		}
	}
	return s.Fetch(ctx)
}

// Delete removes a template and re-fetches
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

func templateRoleRows(templateID string, roles []RoleRequirement) []db.TemplateRoleRow {
	rows := make([]db.TemplateRoleRow, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, db.TemplateRoleRow{
			ID:            uuid.NewString(),
			TemplateID:    templateID,
			RoleID:        r.RoleID,
			RequiredCount: requiredOrDefault(r.RequiredCount),
		})
	}
	return rows
}
