package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/internal/config"
	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

type mockGenerateDB struct {
	db.Database
	templates     []db.TemplateRow
	templateRoles []db.TemplateRoleRow
	rosters       []db.RosterRow
	shifts        []db.RosterShiftRow
	shiftRoles    []db.RosterShiftRoleRow
}

func (m *mockGenerateDB) GetTemplates(ctx context.Context) ([]db.TemplateRow, error) {
	return m.templates, nil
}
func (m *mockGenerateDB) GetTemplateRoles(ctx context.Context) ([]db.TemplateRoleRow, error) {
	return m.templateRoles, nil
}
func (m *mockGenerateDB) GetRosters(ctx context.Context) ([]db.RosterRow, error) {
	return m.rosters, nil
}
func (m *mockGenerateDB) GetRosterShifts(ctx context.Context) ([]db.RosterShiftRow, error) {
	return m.shifts, nil
}
func (m *mockGenerateDB) GetRosterShiftRoles(ctx context.Context) ([]db.RosterShiftRoleRow, error) {
	return m.shiftRoles, nil
}
func (m *mockGenerateDB) GetRosterAssignments(ctx context.Context) ([]db.RosterAssignmentRow, error) {
	return nil, nil
}

func (m *mockGenerateDB) InsertRosterShift(ctx context.Context, shift *db.RosterShiftRow) error {
	m.shifts = append(m.shifts, *shift)
	return nil
}

func (m *mockGenerateDB) SyncRosterShiftRoles(ctx context.Context, shiftID string, roles []db.RosterShiftRoleRow) error {
	m.shiftRoles = append(m.shiftRoles, roles...)
	return nil
}

func generateFixture(t *testing.T) (*store.Registry, *mockGenerateDB) {
	t.Helper()
	mock := &mockGenerateDB{
		templates: []db.TemplateRow{{ID: "t1", Name: "Morning", StartTime: "08:00", EndTime: "14:00"}},
		templateRoles: []db.TemplateRoleRow{
			{ID: "tr1", TemplateID: "t1", RoleID: "nurse", RoleName: "Nurse", RequiredCount: 2},
		},
		rosters: []db.RosterRow{{
			ID:        "r1",
			Name:      "March",
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		}},
	}

	reg := store.NewRegistry(mock, nil, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, reg.Templates.Fetch(ctx))
	require.NoError(t, reg.Rosters.Fetch(ctx))
	return reg, mock
}

func TestGenerateShifts_WeeklyRule(t *testing.T) {
	reg, mock := generateFixture(t)
	rules := []config.ShiftRule{{TemplateName: "Morning", RRule: "FREQ=WEEKLY"}}

	result, err := GenerateShifts(context.Background(), reg, zap.NewNop(), "r1", rules)
	require.NoError(t, err)

	// Weekly from March 1st: 1, 8, 15, 22, 29
	assert.Equal(t, 5, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Len(t, mock.shifts, 5)

	// Each generated shift carries the template's role slots
	for _, shift := range reg.Rosters.ShiftsFor("r1") {
		require.Len(t, shift.Roles, 1)
		assert.Equal(t, 2, shift.Roles[0].RequiredCount)
		assert.Empty(t, shift.Roles[0].AssignedPersonIDs)
	}
}

func TestGenerateShifts_SecondRunSkipsExisting(t *testing.T) {
	reg, mock := generateFixture(t)
	rules := []config.ShiftRule{{TemplateName: "Morning", RRule: "FREQ=WEEKLY"}}
	ctx := context.Background()

	first, err := GenerateShifts(ctx, reg, zap.NewNop(), "r1", rules)
	require.NoError(t, err)
	require.Equal(t, 5, first.Created)

	second, err := GenerateShifts(ctx, reg, zap.NewNop(), "r1", rules)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 5, second.Skipped)
	assert.Len(t, mock.shifts, 5, "no duplicate shifts created")
}

func TestGenerateShifts_UnknownTemplate(t *testing.T) {
	reg, _ := generateFixture(t)
	rules := []config.ShiftRule{{TemplateName: "Night", RRule: "FREQ=WEEKLY"}}

	_, err := GenerateShifts(context.Background(), reg, zap.NewNop(), "r1", rules)
	assert.Error(t, err)
}

func TestGenerateShifts_UnknownRoster(t *testing.T) {
	reg, _ := generateFixture(t)

	_, err := GenerateShifts(context.Background(), reg, zap.NewNop(), "missing", nil)
	assert.Error(t, err)
}
