package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/store"
)

// AddRoleCmd creates the addRole command
func AddRoleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addRole <name> [description...]",
		Short: "Add a role",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Registry.Roles.Add(app.Ctx, store.NewRole{
				Name:        args[0],
				Description: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Role %q added.\n\n", args[0])
			return nil
		},
	}
}

// ListRolesCmd creates the listRoles command
func ListRolesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRoles",
		Short: "List all roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := app.Registry.Roles.Roles()
			if len(roles) == 0 {
				fmt.Println("No roles defined.")
				return nil
			}
			fmt.Printf("\n%d roles:\n\n", len(roles))
			for _, r := range roles {
				if r.Description != "" {
					fmt.Printf("  %s  %s - %s\n", r.ID, r.Name, r.Description)
				} else {
					fmt.Printf("  %s  %s\n", r.ID, r.Name)
				}
			}
			fmt.Println()
			return nil
		},
	}
}
