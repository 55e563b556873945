package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/services"
)

// AssignPersonCmd creates the assignPerson command
func AssignPersonCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assignPerson <shift_id> <role_entry_id> <person_id>",
		Short: "Assign a person to a role slot of a roster shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.AssignPerson(app.Ctx, app.Registry, app.Logger, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Person assigned.\n\n")
			return nil
		},
	}
}

// RemovePersonCmd creates the removePerson command
func RemovePersonCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removePerson <shift_id> <role_entry_id> <person_id>",
		Short: "Remove a person from a role slot of a roster shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemovePerson(app.Ctx, app.Registry, app.Logger, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Person removed.\n\n")
			return nil
		},
	}
}

// ListEligibleCmd creates the listEligible command
func ListEligibleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEligible <shift_id> <role_entry_id>",
		Short: "List people eligible for a role slot of a roster shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := services.EligibleForSlot(app.Registry, args[0], args[1])
			if err != nil {
				return err
			}
			if len(people) == 0 {
				fmt.Println("No eligible people.")
				return nil
			}

			fmt.Printf("\n%d eligible:\n\n", len(people))
			for _, p := range people {
				fmt.Printf("  %s  %s\n", p.ID, p.Name)
			}
			fmt.Println()
			return nil
		},
	}
}
