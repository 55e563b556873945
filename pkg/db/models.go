package db

import "time"

// Row types mirror the relational tables one to one. Child rows carry
// their parent's foreign key; nesting happens later in assemble.

// PersonRow represents a row in the people table
type PersonRow struct {
	ID          string
	Name        string
	Phone       string
	Designation string
	RoleIDs     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleRow represents a row in the roles table
type RoleRow struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GroupRow represents a row in the groups table
type GroupRow struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GroupMemberRow links one person to one group
type GroupMemberRow struct {
	GroupID  string
	PersonID string
}

// LeaveRow represents a row in the leaves table
type LeaveRow struct {
	ID        string
	PersonID  string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateRow represents a row in the shift_templates table
type TemplateRow struct {
	ID        string
	Name      string
	StartTime string
	EndTime   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateRoleRow represents a row in the template_roles table.
// RoleName is joined in from the roles table at query time.
type TemplateRoleRow struct {
	ID            string
	TemplateID    string
	RoleID        string
	RoleName      string
	RequiredCount int
}

// RosterRow represents a row in the rosters table
type RosterRow struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RosterShiftRow represents a row in the roster_shifts table
type RosterShiftRow struct {
	ID         string
	RosterID   string
	TemplateID string
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RosterShiftRoleRow represents a row in the roster_shift_roles table.
// RoleName is joined in from the roles table at query time.
type RosterShiftRoleRow struct {
	ID            string
	RosterShiftID string
	RoleID        string
	RoleName      string
	RequiredCount int
}

// RosterAssignmentRow links one person to one roster shift role slot
type RosterAssignmentRow struct {
	RosterShiftRoleID string
	PersonID          string
}

// ShiftRow represents a row in the legacy shifts table
type ShiftRow struct {
	ID        string
	Name      string
	Date      time.Time
	StartTime string
	EndTime   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftRoleRow represents a row in the legacy shift_roles table.
// RoleName is joined in from the roles table at query time.
type ShiftRoleRow struct {
	ID            string
	ShiftID       string
	RoleID        string
	RoleName      string
	RequiredCount int
}

// ShiftAssignmentRow links one person to one legacy shift role slot
type ShiftAssignmentRow struct {
	ShiftRoleID string
	PersonID    string
}
