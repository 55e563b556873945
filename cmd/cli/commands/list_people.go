package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/availability"
)

// ListPeopleCmd creates the listPeople command
func ListPeopleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPeople [search]",
		Short: "List people, optionally filtered by a search term",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			people := app.Registry.People.People()
			if len(args) > 0 {
				people = app.Registry.People.Search(args[0])
			}

			if len(people) == 0 {
				fmt.Println("No people found.")
				return nil
			}

			leaves := app.Registry.Leaves.Leaves()
			now := time.Now()

			fmt.Printf("\n%d people:\n\n", len(people))
			for _, p := range people {
				line := fmt.Sprintf("  %s  %s", p.ID, p.Name)
				if p.Designation != "" {
					line += fmt.Sprintf(" (%s)", p.Designation)
				}
				status, rng := availability.LeaveStatus(leaves, p.ID, now)
				switch status {
				case availability.StatusCurrent:
					line += fmt.Sprintf("  [on leave until %s]", rng.End.Format("2006-01-02"))
				case availability.StatusUpcoming:
					line += fmt.Sprintf("  [leave from %s]", rng.Start.Format("2006-01-02"))
				}
				fmt.Println(line)
				if len(p.RoleIDs) > 0 {
					names := make([]string, 0, len(p.RoleIDs))
					for _, roleID := range p.RoleIDs {
						if role, ok := app.Registry.Roles.Get(roleID); ok {
							names = append(names, role.Name)
						}
					}
					if len(names) > 0 {
						fmt.Printf("      roles: %s\n", strings.Join(names, ", "))
					}
				}
			}
			fmt.Println()
			return nil
		},
	}
}
