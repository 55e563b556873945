package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

// InstantiateShift copies a template's role requirements into fresh shift
// slots. The slots are copies: the shift created from them keeps its
// headcounts even if the template is edited or deleted later. No people
// are assigned yet.
func InstantiateShift(template model.ShiftTemplate) []store.ShiftSlot {
	slots := make([]store.ShiftSlot, 0, len(template.Roles))
	for _, r := range template.Roles {
		count := r.RequiredCount
		if count <= 0 {
			count = 1
		}
		slots = append(slots, store.ShiftSlot{
			RoleID:            r.RoleID,
			RequiredCount:     count,
			AssignedPersonIDs: []string{},
		})
	}
	return slots
}

// CreateShiftFromTemplate instantiates the template and adds the
// resulting shift to the roster on the given date.
func CreateShiftFromTemplate(ctx context.Context, reg *store.Registry, logger *zap.Logger, rosterID, templateID string, date time.Time) error {
	template, ok := reg.Templates.Get(templateID)
	if !ok {
		return fmt.Errorf("template %s not found", templateID)
	}
	if _, ok := reg.Rosters.Get(rosterID); !ok {
		return fmt.Errorf("roster %s not found", rosterID)
	}

	logger.Debug("Creating shift from template",
		zap.String("roster_id", rosterID),
		zap.String("template", template.Name),
		zap.Time("date", date))

	return reg.Rosters.AddShift(ctx, store.NewRosterShift{
		RosterID:   rosterID,
		TemplateID: templateID,
		Date:       date,
		Slots:      InstantiateShift(template),
	})
}
