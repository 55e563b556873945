package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/db"
)

type mockPersonDB struct {
	db.Database
	people  []db.PersonRow
	patches map[string]db.PersonPatch
}

func (m *mockPersonDB) GetPeople(ctx context.Context) ([]db.PersonRow, error) {
	return m.people, nil
}

func (m *mockPersonDB) InsertPerson(ctx context.Context, person *db.PersonRow) error {
	m.people = append(m.people, *person)
	return nil
}

func (m *mockPersonDB) UpdatePerson(ctx context.Context, id string, patch db.PersonPatch) error {
	if m.patches == nil {
		m.patches = make(map[string]db.PersonPatch)
	}
	m.patches[id] = patch
	for i := range m.people {
		if m.people[i].ID != id {
			continue
		}
		if patch.Name != nil {
			m.people[i].Name = *patch.Name
		}
		if patch.RoleIDs != nil {
			m.people[i].RoleIDs = patch.RoleIDs
		}
	}
	return nil
}

func (m *mockPersonDB) DeletePerson(ctx context.Context, id string) error {
	kept := m.people[:0]
	for _, p := range m.people {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.people = kept
	return nil
}

func TestPersonStore_AddGeneratesIDAndRefetches(t *testing.T) {
	mock := &mockPersonDB{}
	s := NewPersonStore(mock, zap.NewNop())

	require.NoError(t, s.Add(context.Background(), NewPerson{Name: "Alice", Designation: "Nurse"}))

	require.Len(t, mock.people, 1)
	assert.NotEmpty(t, mock.people[0].ID)
	assert.NotNil(t, mock.people[0].RoleIDs, "nil roles normalized before insert")

	// The trailing re-fetch published the new person
	require.Len(t, s.People(), 1)
	assert.Equal(t, "Alice", s.People()[0].Name)
}

func TestPersonStore_Search(t *testing.T) {
	mock := &mockPersonDB{people: []db.PersonRow{
		{ID: "p1", Name: "Alice Smith", Phone: "07700900001", Designation: "Senior Nurse"},
		{ID: "p2", Name: "Bob Jones", Phone: "07700900002", Designation: "Doctor"},
	}}
	s := NewPersonStore(mock, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	assert.Len(t, s.Search("alice"), 1, "name match is case-insensitive")
	assert.Len(t, s.Search("0770090"), 2, "phone substring matches")
	assert.Len(t, s.Search("nurse"), 1, "designation matches")
	assert.Empty(t, s.Search("zzz"))
}

func TestPersonStore_UpdatePassesPatchThrough(t *testing.T) {
	mock := &mockPersonDB{people: []db.PersonRow{{ID: "p1", Name: "Alice"}}}
	s := NewPersonStore(mock, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	name := "Alice Jones"
	require.NoError(t, s.Update(context.Background(), "p1", db.PersonPatch{Name: &name, RoleIDs: []string{"nurse"}}))

	patch := mock.patches["p1"]
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Alice Jones", *patch.Name)
	assert.Equal(t, []string{"nurse"}, patch.RoleIDs)

	person, ok := s.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Alice Jones", person.Name)
	assert.True(t, person.HasRole("nurse"))
}

func TestPersonStore_Delete(t *testing.T) {
	mock := &mockPersonDB{people: []db.PersonRow{{ID: "p1", Name: "Alice"}}}
	s := NewPersonStore(mock, zap.NewNop())
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "p1"))
	assert.Empty(t, s.People())
	_, ok := s.Get("p1")
	assert.False(t, ok)
}
