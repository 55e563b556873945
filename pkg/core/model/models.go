package model

import "time"

// LeaveStatus is the approval state of a leave request.
// Only approved leaves affect assignment availability.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) IsValid() bool {
	return s == LeavePending || s == LeaveApproved || s == LeaveRejected
}

// Person represents an employee who can be assigned to shifts
type Person struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Designation string    `json:"designation"`
	RoleIDs     []string  `json:"roleIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasRole reports whether the person holds the given role.
func (p Person) HasRole(roleID string) bool {
	for _, id := range p.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Role represents a named job function
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Group represents a named collection of people
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PersonIDs   []string  `json:"personIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Leave represents a leave request for one person over an inclusive
// calendar date range.
type Leave struct {
	ID        string      `json:"id"`
	PersonID  string      `json:"personId"`
	StartDate time.Time   `json:"startDate"`
	EndDate   time.Time   `json:"endDate"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ShiftTemplate is a reusable shift pattern: a wall-clock time window plus
// the roles a shift of this kind requires.
type ShiftTemplate struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
	Roles     []TemplateRole `json:"roles"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TemplateRole is a role requirement within a shift template
type TemplateRole struct {
	ID            string `json:"id"`
	RoleID        string `json:"roleId"`
	RoleName      string `json:"roleName"`
	RequiredCount int    `json:"requiredCount"`
}

// Roster is a named, dated collection of shifts covering a period
type Roster struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RosterShift is a concrete shift on a specific date, instantiated from a
// template. Its role entries are copies, not references: editing the
// template later does not change existing shifts.
type RosterShift struct {
	ID         string            `json:"id"`
	RosterID   string            `json:"rosterId"`
	TemplateID string            `json:"templateId"`
	Date       time.Time         `json:"date"`
	Roles      []RosterShiftRole `json:"roles"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// RosterShiftRole is a role slot within a roster shift, tracking the people
// assigned to it.
type RosterShiftRole struct {
	ID                string   `json:"id"`
	RoleID            string   `json:"roleId"`
	RoleName          string   `json:"roleName"`
	AssignedPersonIDs []string `json:"assignedPersonIds"`
	RequiredCount     int      `json:"requiredCount"`
}

// HasAssigned reports whether the person is already assigned to this slot.
func (r RosterShiftRole) HasAssigned(personID string) bool {
	for _, id := range r.AssignedPersonIDs {
		if id == personID {
			return true
		}
	}
	return false
}

// Shift is the legacy standalone shift: same structure as a roster shift
// but named, not attached to a roster and not derived from a template.
type Shift struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Date      time.Time   `json:"date"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Roles     []ShiftRole `json:"roles"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ShiftRole is a role slot within a legacy shift
type ShiftRole struct {
	ID                string   `json:"id"`
	RoleID            string   `json:"roleId"`
	RoleName          string   `json:"roleName"`
	AssignedPersonIDs []string `json:"assignedPersonIds"`
	RequiredCount     int      `json:"requiredCount"`
}

// DashboardStats summarises the current state of all domains
type DashboardStats struct {
	TotalPeople   int `json:"totalPeople"`
	TotalRoles    int `json:"totalRoles"`
	TotalGroups   int `json:"totalGroups"`
	TotalShifts   int `json:"totalShifts"`
	TotalRosters  int `json:"totalRosters"`
	PeopleOnLeave int `json:"peopleOnLeave"`
}
