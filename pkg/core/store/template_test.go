package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/db"
	"github.com/rosterly/shiftroster/pkg/snapshot"
)

type mockTemplateDB struct {
	db.Database
	templates []db.TemplateRow
	roles     []db.TemplateRoleRow
	synced    map[string][]db.TemplateRoleRow
}

func (m *mockTemplateDB) GetTemplates(ctx context.Context) ([]db.TemplateRow, error) {
	return m.templates, nil
}

func (m *mockTemplateDB) GetTemplateRoles(ctx context.Context) ([]db.TemplateRoleRow, error) {
	return m.roles, nil
}

func (m *mockTemplateDB) InsertTemplate(ctx context.Context, template *db.TemplateRow) error {
	m.templates = append(m.templates, *template)
	return nil
}

func (m *mockTemplateDB) UpdateTemplate(ctx context.Context, id string, patch db.TemplatePatch) error {
	for i := range m.templates {
		if m.templates[i].ID == id && patch.Name != nil {
			m.templates[i].Name = *patch.Name
		}
	}
	return nil
}

func (m *mockTemplateDB) SyncTemplateRoles(ctx context.Context, templateID string, roles []db.TemplateRoleRow) error {
	if m.synced == nil {
		m.synced = make(map[string][]db.TemplateRoleRow)
	}
	m.synced[templateID] = roles

	kept := m.roles[:0]
	for _, r := range m.roles {
		if r.TemplateID != templateID {
			kept = append(kept, r)
		}
	}
	m.roles = append(kept, roles...)
	return nil
}

func (m *mockTemplateDB) DeleteTemplate(ctx context.Context, id string) error {
	kept := m.templates[:0]
	for _, t := range m.templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.templates = kept
	return nil
}

func TestTemplateStore_AddWithRoles(t *testing.T) {
	mock := &mockTemplateDB{}
	s := NewTemplateStore(mock, nil, zap.NewNop())

	err := s.Add(context.Background(), NewTemplate{
		Name:      "Morning",
		StartTime: "08:00",
		EndTime:   "14:00",
		Roles: []RoleRequirement{
			{RoleID: "nurse", RequiredCount: 2},
			{RoleID: "doctor"},
		},
	})
	require.NoError(t, err)

	templates := s.Templates()
	require.Len(t, templates, 1)
	require.Len(t, templates[0].Roles, 2)

	counts := map[string]int{}
	for _, r := range templates[0].Roles {
		counts[r.RoleID] = r.RequiredCount
	}
	assert.Equal(t, 2, counts["nurse"])
	assert.Equal(t, 1, counts["doctor"], "zero count defaults to 1")
}

func TestTemplateStore_FindByName(t *testing.T) {
	mock := &mockTemplateDB{templates: []db.TemplateRow{{ID: "t1", Name: "Morning"}}}
	s := NewTemplateStore(mock, nil, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	_, ok := s.FindByName("Morning")
	assert.True(t, ok)
	_, ok = s.FindByName("morning")
	assert.False(t, ok, "name match is exact")
}

func TestTemplateStore_SnapshotRoundTrip(t *testing.T) {
	cache, err := snapshot.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	defer cache.Close()

	mock := &mockTemplateDB{
		templates: []db.TemplateRow{{ID: "t1", Name: "Morning", StartTime: "08:00", EndTime: "14:00"}},
		roles:     []db.TemplateRoleRow{{ID: "tr1", TemplateID: "t1", RoleID: "nurse", RoleName: "Nurse", RequiredCount: 2}},
	}
	s := NewTemplateStore(mock, cache, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	// A fresh store over the same cache publishes the persisted snapshot
	// without touching the database
	restored := NewTemplateStore(&mockTemplateDB{}, cache, zap.NewNop())
	restored.LoadPersisted()

	templates := restored.Templates()
	require.Len(t, templates, 1)
	assert.Equal(t, "Morning", templates[0].Name)
	require.Len(t, templates[0].Roles, 1)
	assert.Equal(t, "Nurse", templates[0].Roles[0].RoleName)
}

func TestTemplateStore_LoadPersistedNoCache(t *testing.T) {
	s := NewTemplateStore(&mockTemplateDB{}, nil, zap.NewNop())
	s.LoadPersisted()
	assert.Empty(t, s.Templates())
}
