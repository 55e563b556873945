// Package availability classifies people's leave state relative to a
// calendar date and filters assignment candidates. All comparisons are
// date-only: times of day are normalized to midnight before comparing,
// and leave ranges are inclusive on both ends.
package availability

import (
	"sort"
	"time"

	"github.com/rosterly/shiftroster/pkg/core/model"
)

// Status classifies a person's leave relative to a reference date
type Status string

const (
	StatusNone     Status = ""
	StatusCurrent  Status = "current"
	StatusUpcoming Status = "upcoming"
)

// Range is the inclusive date range of the leave that produced a status
type Range struct {
	Start time.Time
	End   time.Time
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// approvedFor returns the person's approved leaves sorted by ascending
// start date. Unknown person ids simply yield an empty slice.
func approvedFor(leaves []model.Leave, personID string) []model.Leave {
	var approved []model.Leave
	for _, l := range leaves {
		if l.PersonID == personID && l.Status == model.LeaveApproved {
			approved = append(approved, l)
		}
	}
	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].StartDate.Before(approved[j].StartDate)
	})
	return approved
}

// IsOnLeave reports whether the person has an approved leave whose
// inclusive range contains the given calendar date.
func IsOnLeave(leaves []model.Leave, personID string, date time.Time) bool {
	day := midnight(date)
	for _, l := range leaves {
		if l.PersonID != personID || l.Status != model.LeaveApproved {
			continue
		}
		start := midnight(l.StartDate)
		end := midnight(l.EndDate)
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}
	return false
}

// LeaveStatus classifies a person's approved leave relative to the
// reference date: StatusCurrent if the date falls inside a leave range,
// otherwise StatusUpcoming for the nearest leave starting strictly after
// the date, otherwise StatusNone. The returned range is the leave that
// produced the status.
func LeaveStatus(leaves []model.Leave, personID string, ref time.Time) (Status, *Range) {
	day := midnight(ref)
	for _, l := range approvedFor(leaves, personID) {
		start := midnight(l.StartDate)
		end := midnight(l.EndDate)
		if !day.Before(start) && !day.After(end) {
			return StatusCurrent, &Range{Start: start, End: end}
		}
		if start.After(day) {
			return StatusUpcoming, &Range{Start: start, End: end}
		}
	}
	return StatusNone, nil
}

// EligiblePeople filters the person collection to those not on approved
// leave on the given date.
func EligiblePeople(people []model.Person, leaves []model.Leave, date time.Time) []model.Person {
	eligible := make([]model.Person, 0, len(people))
	for _, p := range people {
		if !IsOnLeave(leaves, p.ID, date) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// EligibleForRole filters the person collection to candidates for a role
// slot on a date: the person must hold the role, must not already be in
// the assigned set, and must not be on approved leave for the date.
func EligibleForRole(people []model.Person, leaves []model.Leave, roleID string, assigned []string, date time.Time) []model.Person {
	assignedSet := make(map[string]bool, len(assigned))
	for _, id := range assigned {
		assignedSet[id] = true
	}

	eligible := make([]model.Person, 0, len(people))
	for _, p := range people {
		if assignedSet[p.ID] || !p.HasRole(roleID) {
			continue
		}
		if IsOnLeave(leaves, p.ID, date) {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}
