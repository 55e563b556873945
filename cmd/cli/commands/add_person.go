package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/store"
)

// AddPersonCmd creates the addPerson command
func AddPersonCmd(app *AppContext) *cobra.Command {
	var phone, designation string
	var roleNames []string

	cmd := &cobra.Command{
		Use:   "addPerson <name>",
		Short: "Add a person, optionally with phone, designation and roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roleIDs := make([]string, 0, len(roleNames))
			for _, name := range roleNames {
				role, ok := app.Registry.Roles.FindByName(name)
				if !ok {
					return fmt.Errorf("role %q not found", name)
				}
				roleIDs = append(roleIDs, role.ID)
			}

			err := app.Registry.People.Add(app.Ctx, store.NewPerson{
				Name:        args[0],
				Phone:       phone,
				Designation: designation,
				RoleIDs:     roleIDs,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Person %q added.\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&designation, "designation", "", "Job designation")
	cmd.Flags().StringSliceVar(&roleNames, "role", nil, "Role name (repeatable)")
	return cmd
}
