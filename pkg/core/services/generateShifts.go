package services

import (
	"context"
	"fmt"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/internal/config"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

// GenerateResult summarises one shift generation run
type GenerateResult struct {
	Created int
	Skipped int
}

// GenerateShifts expands the configured recurrence rules across a
// roster's period and creates one shift per occurrence. Dates that
// already carry a shift from the same template are skipped, so the
// operation is safe to repeat after a rule or template change.
func GenerateShifts(ctx context.Context, reg *store.Registry, logger *zap.Logger, rosterID string, rules []config.ShiftRule) (*GenerateResult, error) {
	roster, ok := reg.Rosters.Get(rosterID)
	if !ok {
		return nil, fmt.Errorf("roster %s not found", rosterID)
	}

	logger.Debug("Generating shifts",
		zap.String("roster", roster.Name),
		zap.Time("start", roster.StartDate),
		zap.Time("end", roster.EndDate),
		zap.Int("rules", len(rules)))

	result := &GenerateResult{}
	for _, rule := range rules {
		template, ok := reg.Templates.FindByName(rule.TemplateName)
		if !ok {
			return nil, fmt.Errorf("template %q not found", rule.TemplateName)
		}

		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule for template %q: %w", rule.TemplateName, err)
		}
		r.DTStart(roster.StartDate)

		occurrences := r.Between(roster.StartDate, roster.EndDate, true)
		logger.Debug("Expanded recurrence rule",
			zap.String("template", template.Name),
			zap.Int("occurrences", len(occurrences)))

		existing := make(map[string]bool)
		for _, shift := range reg.Rosters.ShiftsFor(rosterID) {
			if shift.TemplateID == template.ID {
				existing[shift.Date.Format("2006-01-02")] = true
			}
		}

		for _, date := range occurrences {
			if existing[date.Format("2006-01-02")] {
				result.Skipped++
				continue
			}
			if err := reg.Rosters.AddShift(ctx, store.NewRosterShift{
				RosterID:   rosterID,
				TemplateID: template.ID,
				Date:       date,
				Slots:      InstantiateShift(template),
			}); err != nil {
				return nil, fmt.Errorf("failed to create shift on %s: %w", date.Format("2006-01-02"), err)
			}
			result.Created++
		}
	}

	logger.Info("Shift generation complete",
		zap.String("roster", roster.Name),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return result, nil
}
