package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/store"
)

// AddTemplateCmd creates the addTemplate command
func AddTemplateCmd(app *AppContext) *cobra.Command {
	var roleSpecs []string

	cmd := &cobra.Command{
		Use:   "addTemplate <name> <start_time> <end_time>",
		Short: "Add a shift template (times HH:MM, roles as name=count)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := make([]store.RoleRequirement, 0, len(roleSpecs))
			for _, spec := range roleSpecs {
				name, countStr, found := strings.Cut(spec, "=")
				count := 1
				if found {
					n, err := strconv.Atoi(countStr)
					if err != nil {
						return fmt.Errorf("invalid role count in %q: %w", spec, err)
					}
					count = n
				}
				role, ok := app.Registry.Roles.FindByName(name)
				if !ok {
					return fmt.Errorf("role %q not found", name)
				}
				roles = append(roles, store.RoleRequirement{RoleID: role.ID, RequiredCount: count})
			}

			err := app.Registry.Templates.Add(app.Ctx, store.NewTemplate{
				Name:      args[0],
				StartTime: args[1],
				EndTime:   args[2],
				Roles:     roles,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Template %q added with %d roles.\n\n", args[0], len(roles))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roleSpecs, "role", nil, "Role requirement as name=count (repeatable)")
	return cmd
}

// ListTemplatesCmd creates the listTemplates command
func ListTemplatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listTemplates",
		Short: "List all shift templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := app.Registry.Templates.Templates()
			if len(templates) == 0 {
				fmt.Println("No templates defined.")
				return nil
			}

			fmt.Printf("\n%d templates:\n\n", len(templates))
			for _, t := range templates {
				fmt.Printf("  %s  %s  %s-%s\n", t.ID, t.Name, t.StartTime, t.EndTime)
				for _, r := range t.Roles {
					fmt.Printf("      %s x%d\n", r.RoleName, r.RequiredCount)
				}
			}
			fmt.Println()
			return nil
		},
	}
}
