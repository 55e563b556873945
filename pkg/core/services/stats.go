package services

import (
	"time"

	"github.com/rosterly/shiftroster/pkg/core/availability"
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

// Stats summarises the current snapshots for the dashboard. PeopleOnLeave
// counts people with an approved leave covering the given date.
func Stats(reg *store.Registry, now time.Time) model.DashboardStats {
	people := reg.People.People()

	onLeave := 0
	leaves := reg.Leaves.Leaves()
	for _, p := range people {
		if availability.IsOnLeave(leaves, p.ID, now) {
			onLeave++
		}
	}

	return model.DashboardStats{
		TotalPeople:   len(people),
		TotalRoles:    len(reg.Roles.Roles()),
		TotalGroups:   len(reg.Groups.Groups()),
		TotalShifts:   len(reg.Rosters.Shifts()) + len(reg.Shifts.Shifts()),
		TotalRosters:  len(reg.Rosters.Rosters()),
		PeopleOnLeave: onLeave,
	}
}
