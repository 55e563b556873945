package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/services"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

// CreateRosterCmd creates the createRoster command
func CreateRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "createRoster <name> <start> <end>",
		Short: "Create a roster covering a date range (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(args[1])
			if err != nil {
				return err
			}
			end, err := parseDate(args[2])
			if err != nil {
				return err
			}
			if end.Before(start) {
				return fmt.Errorf("roster end %s precedes start %s", args[2], args[1])
			}

			err = app.Registry.Rosters.AddRoster(app.Ctx, store.NewRoster{
				Name:      args[0],
				StartDate: start,
				EndDate:   end,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster %q created: %s to %s.\n\n", args[0], args[1], args[2])
			return nil
		},
	}
}

// GenerateShiftsCmd creates the generateShifts command
func GenerateShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generateShifts <roster_id>",
		Short: "Generate shifts for a roster from the configured recurrence rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(app.Cfg.ShiftRules) == 0 {
				return fmt.Errorf("no shift rules configured")
			}

			result, err := services.GenerateShifts(app.Ctx, app.Registry, app.Logger, args[0], app.Cfg.ShiftRules)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift generation complete: %d created, %d already present.\n\n",
				result.Created, result.Skipped)
			return nil
		},
	}
}

// ViewRosterCmd creates the viewRoster command
func ViewRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRoster [roster_id]",
		Short: "View a roster's shifts and assignments (defaults to most recent)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosters := app.Registry.Rosters.Rosters()
			if len(rosters) == 0 {
				fmt.Println("No rosters found.")
				return nil
			}

			roster := rosters[0]
			if len(args) > 0 {
				r, ok := app.Registry.Rosters.Get(args[0])
				if !ok {
					return fmt.Errorf("roster %s not found", args[0])
				}
				roster = r
			}

			fmt.Printf("\nRoster: %s (%s to %s)\n\n", roster.Name,
				roster.StartDate.Format("2006-01-02"), roster.EndDate.Format("2006-01-02"))

			shifts := app.Registry.Rosters.ShiftsFor(roster.ID)
			if len(shifts) == 0 {
				fmt.Println("  No shifts yet.")
				fmt.Println()
				return nil
			}

			for _, shift := range shifts {
				label := shift.TemplateID
				if t, ok := app.Registry.Templates.Get(shift.TemplateID); ok {
					label = t.Name
				}
				fmt.Printf("  %s  %s  (%s)\n", shift.ID, shift.Date.Format("2006-01-02 Monday"), label)
				for _, slot := range shift.Roles {
					fmt.Printf("      %s  %s %d/%d", slot.ID, slot.RoleName, len(slot.AssignedPersonIDs), slot.RequiredCount)
					for _, personID := range slot.AssignedPersonIDs {
						name := personID
						if p, ok := app.Registry.People.Get(personID); ok {
							name = p.Name
						}
						fmt.Printf("  %s", name)
					}
					fmt.Println()
				}
			}
			fmt.Println()
			return nil
		},
	}
}
