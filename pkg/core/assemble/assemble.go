// Package assemble reassembles flat relational rows into the nested
// domain objects the stores publish. All functions are pure: given the
// same row sets they produce structurally identical output, and child
// ordering follows the input row order.
//
// Joins are done through id-keyed index maps rather than repeated linear
// scans, so a fetch of N parents, M children and K grandchildren costs
// O(N+M+K).
package assemble

import (
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
)

// People maps people rows to domain objects
func People(rows []db.PersonRow) []model.Person {
	people := make([]model.Person, 0, len(rows))
	for _, r := range rows {
		roleIDs := r.RoleIDs
		if roleIDs == nil {
			roleIDs = []string{}
		}
		people = append(people, model.Person{
			ID:          r.ID,
			Name:        r.Name,
			Phone:       r.Phone,
			Designation: r.Designation,
			RoleIDs:     roleIDs,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return people
}

// Roles maps role rows to domain objects
func Roles(rows []db.RoleRow) []model.Role {
	roles := make([]model.Role, 0, len(rows))
	for _, r := range rows {
		roles = append(roles, model.Role{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return roles
}

// Leaves maps leave rows to domain objects
func Leaves(rows []db.LeaveRow) []model.Leave {
	leaves := make([]model.Leave, 0, len(rows))
	for _, r := range rows {
		leaves = append(leaves, model.Leave{
			ID:        r.ID,
			PersonID:  r.PersonID,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Reason:    r.Reason,
			Status:    model.LeaveStatus(r.Status),
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return leaves
}

// Groups joins group rows with their membership rows
func Groups(groups []db.GroupRow, members []db.GroupMemberRow) []model.Group {
	membersByGroup := make(map[string][]string, len(groups))
	for _, m := range members {
		membersByGroup[m.GroupID] = append(membersByGroup[m.GroupID], m.PersonID)
	}

	out := make([]model.Group, 0, len(groups))
	for _, g := range groups {
		personIDs := membersByGroup[g.ID]
		if personIDs == nil {
			personIDs = []string{}
		}
		out = append(out, model.Group{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			PersonIDs:   personIDs,
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
		})
	}
	return out
}

// Templates joins template rows with their role requirement rows
func Templates(templates []db.TemplateRow, roles []db.TemplateRoleRow) []model.ShiftTemplate {
	rolesByTemplate := make(map[string][]model.TemplateRole, len(templates))
	for _, tr := range roles {
		rolesByTemplate[tr.TemplateID] = append(rolesByTemplate[tr.TemplateID], model.TemplateRole{
			ID:            tr.ID,
			RoleID:        tr.RoleID,
			RoleName:      tr.RoleName,
			RequiredCount: tr.RequiredCount,
		})
	}

	out := make([]model.ShiftTemplate, 0, len(templates))
	for _, t := range templates {
		templateRoles := rolesByTemplate[t.ID]
		if templateRoles == nil {
			templateRoles = []model.TemplateRole{}
		}
		out = append(out, model.ShiftTemplate{
			ID:        t.ID,
			Name:      t.Name,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
			Roles:     templateRoles,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	return out
}

// Rosters maps roster rows to domain objects
func Rosters(rows []db.RosterRow) []model.Roster {
	rosters := make([]model.Roster, 0, len(rows))
	for _, r := range rows {
		rosters = append(rosters, model.Roster{
			ID:        r.ID,
			Name:      r.Name,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return rosters
}

// RosterShifts joins roster shift rows with their role slots and the
// assignments attached to each slot. Every shift carries exactly the
// slots whose foreign key matches it, and every slot exactly the person
// ids assigned to it.
func RosterShifts(shifts []db.RosterShiftRow, roles []db.RosterShiftRoleRow, assignments []db.RosterAssignmentRow) []model.RosterShift {
	assignedBySlot := make(map[string][]string)
	for _, a := range assignments {
		assignedBySlot[a.RosterShiftRoleID] = append(assignedBySlot[a.RosterShiftRoleID], a.PersonID)
	}

	rolesByShift := make(map[string][]model.RosterShiftRole, len(shifts))
	for _, sr := range roles {
		assigned := assignedBySlot[sr.ID]
		if assigned == nil {
			assigned = []string{}
		}
		rolesByShift[sr.RosterShiftID] = append(rolesByShift[sr.RosterShiftID], model.RosterShiftRole{
			ID:                sr.ID,
			RoleID:            sr.RoleID,
			RoleName:          sr.RoleName,
			AssignedPersonIDs: assigned,
			RequiredCount:     sr.RequiredCount,
		})
	}

	out := make([]model.RosterShift, 0, len(shifts))
	for _, s := range shifts {
		shiftRoles := rolesByShift[s.ID]
		if shiftRoles == nil {
			shiftRoles = []model.RosterShiftRole{}
		}
		out = append(out, model.RosterShift{
			ID:         s.ID,
			RosterID:   s.RosterID,
			TemplateID: s.TemplateID,
			Date:       s.Date,
			Roles:      shiftRoles,
			CreatedAt:  s.CreatedAt,
			UpdatedAt:  s.UpdatedAt,
		})
	}
	return out
}

// Shifts joins legacy shift rows with their role slots and assignments
func Shifts(shifts []db.ShiftRow, roles []db.ShiftRoleRow, assignments []db.ShiftAssignmentRow) []model.Shift {
	assignedBySlot := make(map[string][]string)
	for _, a := range assignments {
		assignedBySlot[a.ShiftRoleID] = append(assignedBySlot[a.ShiftRoleID], a.PersonID)
	}

	rolesByShift := make(map[string][]model.ShiftRole, len(shifts))
	for _, sr := range roles {
		assigned := assignedBySlot[sr.ID]
		if assigned == nil {
			assigned = []string{}
		}
		rolesByShift[sr.ShiftID] = append(rolesByShift[sr.ShiftID], model.ShiftRole{
			ID:                sr.ID,
			RoleID:            sr.RoleID,
			RoleName:          sr.RoleName,
			AssignedPersonIDs: assigned,
			RequiredCount:     sr.RequiredCount,
		})
	}

	out := make([]model.Shift, 0, len(shifts))
	for _, s := range shifts {
		shiftRoles := rolesByShift[s.ID]
		if shiftRoles == nil {
			shiftRoles = []model.ShiftRole{}
		}
		out = append(out, model.Shift{
			ID:        s.ID,
			Name:      s.Name,
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Roles:     shiftRoles,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}
