package db

import (
	"context"
	"time"
)

// Patch types carry partial updates: nil fields are left untouched.

type PersonPatch struct {
	Name        *string
	Phone       *string
	Designation *string
	RoleIDs     []string // nil means unchanged
}

type RolePatch struct {
	Name        *string
	Description *string
}

type GroupPatch struct {
	Name        *string
	Description *string
}

type LeavePatch struct {
	PersonID  *string
	StartDate *time.Time
	EndDate   *time.Time
	Reason    *string
	Status    *string
}

type TemplatePatch struct {
	Name      *string
	StartTime *string
	EndTime   *string
}

type RosterPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
}

type RosterShiftPatch struct {
	Date *time.Time
}

type ShiftPatch struct {
	Name      *string
	Date      *time.Time
	StartTime *string
	EndTime   *string
}

// PersonStore defines the interface for people table operations
type PersonStore interface {
	GetPeople(ctx context.Context) ([]PersonRow, error)
	InsertPerson(ctx context.Context, person *PersonRow) error
	UpdatePerson(ctx context.Context, id string, patch PersonPatch) error
	DeletePerson(ctx context.Context, id string) error
}

// RoleStore defines the interface for roles table operations
type RoleStore interface {
	GetRoles(ctx context.Context) ([]RoleRow, error)
	InsertRole(ctx context.Context, role *RoleRow) error
	UpdateRole(ctx context.Context, id string, patch RolePatch) error
	DeleteRole(ctx context.Context, id string) error
}

// GroupStore defines the interface for groups and group membership
// operations. SyncGroupMembers reconciles the stored member set with the
// desired one inside a single transaction.
type GroupStore interface {
	GetGroups(ctx context.Context) ([]GroupRow, error)
	GetGroupMembers(ctx context.Context) ([]GroupMemberRow, error)
	InsertGroup(ctx context.Context, group *GroupRow) error
	UpdateGroup(ctx context.Context, id string, patch GroupPatch) error
	SyncGroupMembers(ctx context.Context, groupID string, personIDs []string) error
	DeleteGroup(ctx context.Context, id string) error
}

// LeaveStore defines the interface for leaves table operations.
// GetLeaves returns rows ordered by start date ascending.
type LeaveStore interface {
	GetLeaves(ctx context.Context) ([]LeaveRow, error)
	InsertLeave(ctx context.Context, leave *LeaveRow) error
	UpdateLeave(ctx context.Context, id string, patch LeavePatch) error
	DeleteLeave(ctx context.Context, id string) error
}

// TemplateStore defines the interface for shift template operations.
// Template role rows come back with the role display name joined in.
type TemplateStore interface {
	GetTemplates(ctx context.Context) ([]TemplateRow, error)
	GetTemplateRoles(ctx context.Context) ([]TemplateRoleRow, error)
	InsertTemplate(ctx context.Context, template *TemplateRow) error
	UpdateTemplate(ctx context.Context, id string, patch TemplatePatch) error
	SyncTemplateRoles(ctx context.Context, templateID string, roles []TemplateRoleRow) error
	DeleteTemplate(ctx context.Context, id string) error
}

// RosterStore defines the interface for rosters, roster shifts, their role
// slots and assignments. Deleting a roster cascades to its shifts, role
// slots and assignments at the schema level.
type RosterStore interface {
	GetRosters(ctx context.Context) ([]RosterRow, error)
	GetRosterShifts(ctx context.Context) ([]RosterShiftRow, error)
	GetRosterShiftRoles(ctx context.Context) ([]RosterShiftRoleRow, error)
	GetRosterAssignments(ctx context.Context) ([]RosterAssignmentRow, error)
	InsertRoster(ctx context.Context, roster *RosterRow) error
	UpdateRoster(ctx context.Context, id string, patch RosterPatch) error
	DeleteRoster(ctx context.Context, id string) error
	InsertRosterShift(ctx context.Context, shift *RosterShiftRow) error
	UpdateRosterShift(ctx context.Context, id string, patch RosterShiftPatch) error
	SyncRosterShiftRoles(ctx context.Context, shiftID string, roles []RosterShiftRoleRow) error
	DeleteRosterShift(ctx context.Context, id string) error
	GetRosterShiftRoleID(ctx context.Context, shiftID, roleID string) (string, error)
	InsertRosterAssignment(ctx context.Context, assignment RosterAssignmentRow) error
	DeleteRosterAssignment(ctx context.Context, roleEntryID, personID string) error
}

// ShiftStore defines the interface for the legacy standalone shifts
type ShiftStore interface {
	GetShifts(ctx context.Context) ([]ShiftRow, error)
	GetShiftRoles(ctx context.Context) ([]ShiftRoleRow, error)
	GetShiftAssignments(ctx context.Context) ([]ShiftAssignmentRow, error)
	InsertShift(ctx context.Context, shift *ShiftRow) error
	UpdateShift(ctx context.Context, id string, patch ShiftPatch) error
	SyncShiftRoles(ctx context.Context, shiftID string, roles []ShiftRoleRow) error
	DeleteShift(ctx context.Context, id string) error
	GetShiftRoleID(ctx context.Context, shiftID, roleID string) (string, error)
	InsertShiftAssignment(ctx context.Context, assignment ShiftAssignmentRow) error
	DeleteShiftAssignment(ctx context.Context, roleEntryID, personID string) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	PersonStore
	RoleStore
	GroupStore
	LeaveStore
	TemplateStore
	RosterStore
	ShiftStore
}
