package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/availability"
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

var (
	// ErrRoleNotHeld is returned when the person does not hold the slot's
	// role
	ErrRoleNotHeld = errors.New("person does not hold the required role")

	// ErrPersonOnLeave is returned when the person has an approved leave
	// covering the shift date
	ErrPersonOnLeave = errors.New("person is on approved leave for the shift date")

	// ErrAlreadyAssigned is returned when the person is already in the
	// slot's assigned set
	ErrAlreadyAssigned = errors.New("person is already assigned to this slot")
)

// findSlot locates a role slot within a roster shift
func findSlot(shift model.RosterShift, roleEntryID string) (model.RosterShiftRole, bool) {
	for _, slot := range shift.Roles {
		if slot.ID == roleEntryID {
			return slot, true
		}
	}
	return model.RosterShiftRole{}, false
}

// AssignPerson assigns a person to a role slot of a roster shift after
// checking eligibility: the person must hold the slot's role, must not
// already be assigned to it, and must not be on approved leave on the
// shift's date.
func AssignPerson(ctx context.Context, reg *store.Registry, logger *zap.Logger, shiftID, roleEntryID, personID string) error {
	shift, ok := reg.Rosters.GetShift(shiftID)
	if !ok {
		return fmt.Errorf("shift %s not found", shiftID)
	}
	slot, ok := findSlot(shift, roleEntryID)
	if !ok {
		return fmt.Errorf("role slot %s not found in shift %s", roleEntryID, shiftID)
	}
	person, ok := reg.People.Get(personID)
	if !ok {
		return fmt.Errorf("person %s not found", personID)
	}

	if slot.HasAssigned(personID) {
		return ErrAlreadyAssigned
	}
	if !person.HasRole(slot.RoleID) {
		return ErrRoleNotHeld
	}
	if availability.IsOnLeave(reg.Leaves.Leaves(), personID, shift.Date) {
		return ErrPersonOnLeave
	}

	logger.Debug("Assigning person to shift",
		zap.String("person", person.Name),
		zap.String("role", slot.RoleName),
		zap.Time("date", shift.Date))

	return reg.Rosters.Assign(ctx, roleEntryID, personID)
}

// RemovePerson removes a person from a role slot of a roster shift
func RemovePerson(ctx context.Context, reg *store.Registry, logger *zap.Logger, shiftID, roleEntryID, personID string) error {
	shift, ok := reg.Rosters.GetShift(shiftID)
	if !ok {
		return fmt.Errorf("shift %s not found", shiftID)
	}
	slot, ok := findSlot(shift, roleEntryID)
	if !ok {
		return fmt.Errorf("role slot %s not found in shift %s", roleEntryID, shiftID)
	}
	if !slot.HasAssigned(personID) {
		return fmt.Errorf("person %s is not assigned to slot %s", personID, roleEntryID)
	}

	logger.Debug("Removing person from shift",
		zap.String("person_id", personID),
		zap.String("role", slot.RoleName),
		zap.Time("date", shift.Date))

	return reg.Rosters.Unassign(ctx, roleEntryID, personID)
}

// EligibleForSlot returns the people who could be assigned to a role slot
// of a roster shift right now: role holders not already in the slot and
// not on approved leave on the shift's date.
func EligibleForSlot(reg *store.Registry, shiftID, roleEntryID string) ([]model.Person, error) {
	shift, ok := reg.Rosters.GetShift(shiftID)
	if !ok {
		return nil, fmt.Errorf("shift %s not found", shiftID)
	}
	slot, ok := findSlot(shift, roleEntryID)
	if !ok {
		return nil, fmt.Errorf("role slot %s not found in shift %s", roleEntryID, shiftID)
	}
	return availability.EligibleForRole(reg.People.People(), reg.Leaves.Leaves(), slot.RoleID, slot.AssignedPersonIDs, shift.Date), nil
}
