package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/services"
)

// StatsCmd creates the stats command
func StatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := services.Stats(app.Registry, time.Now())

			fmt.Printf("\nPeople:          %d\n", stats.TotalPeople)
			fmt.Printf("Roles:           %d\n", stats.TotalRoles)
			fmt.Printf("Groups:          %d\n", stats.TotalGroups)
			fmt.Printf("Shifts:          %d\n", stats.TotalShifts)
			fmt.Printf("Rosters:         %d\n", stats.TotalRosters)
			fmt.Printf("On leave today:  %d\n\n", stats.PeopleOnLeave)
			return nil
		},
	}
}
