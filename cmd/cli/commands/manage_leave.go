package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosterly/shiftroster/pkg/core/services"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return date, nil
}

// RequestLeaveCmd creates the requestLeave command
func RequestLeaveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requestLeave <person_id> <start> <end> [reason...]",
		Short: "Record a leave request for a person (dates YYYY-MM-DD, inclusive)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(args[1])
			if err != nil {
				return err
			}
			end, err := parseDate(args[2])
			if err != nil {
				return err
			}

			err = app.Registry.Leaves.Add(app.Ctx, store.NewLeave{
				PersonID:  args[0],
				StartDate: start,
				EndDate:   end,
				Reason:    strings.Join(args[3:], " "),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Leave requested: %s to %s.\n\n", args[1], args[2])
			return nil
		},
	}
}

// ApproveLeaveCmd creates the approveLeave command
func ApproveLeaveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approveLeave <leave_id>",
		Short: "Approve a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.ApproveLeave(app.Ctx, app.Registry, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Leave %s approved.\n\n", args[0])
			return nil
		},
	}
}

// RejectLeaveCmd creates the rejectLeave command
func RejectLeaveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rejectLeave <leave_id>",
		Short: "Reject a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RejectLeave(app.Ctx, app.Registry, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Leave %s rejected.\n\n", args[0])
			return nil
		},
	}
}

// ListLeavesCmd creates the listLeaves command
func ListLeavesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listLeaves [person_id]",
		Short: "List leave requests, optionally for one person",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leaves := app.Registry.Leaves.Leaves()
			if len(args) > 0 {
				leaves = app.Registry.Leaves.ByPerson(args[0])
			}
			if len(leaves) == 0 {
				fmt.Println("No leave requests found.")
				return nil
			}

			fmt.Printf("\n%d leave requests:\n\n", len(leaves))
			for _, l := range leaves {
				name := l.PersonID
				if p, ok := app.Registry.People.Get(l.PersonID); ok {
					name = p.Name
				}
				fmt.Printf("  %s  %s  %s to %s  [%s]",
					l.ID, name,
					l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"),
					l.Status)
				if l.Reason != "" {
					fmt.Printf("  %s", l.Reason)
				}
				fmt.Println()
			}
			fmt.Println()
			return nil
		},
	}
}
