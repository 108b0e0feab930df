package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldserve/dispatch/internal/cli/formatter"
	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/spf13/cobra"
)

func newAutoAssignCmd(app *App) *cobra.Command {
	var (
		date   string
		days   int
		dryRun bool
		by     string
	)

	cmd := &cobra.Command{
		Use:   "auto-assign",
		Short: "Plan and apply assignments for every open job",
		RunE: func(cmd *cobra.Command, args []string) error {
			var start time.Time
			if d, err := parseDateFlag(date); err != nil {
				return err
			} else if d != nil {
				start = *d
			}
			req := contract.NewAutoAssignRequest(start)
			req.Days = days
			req.DryRun = dryRun
			if by != "" {
				req.AssignedBy = by
			}

			stop := formatter.StartSpinner("Planning assignments...")
			resp, err := app.AutoAssign.Run(context.Background(), req)
			stop()

			var aerr *contract.AutoAssignError
			if errors.As(err, &aerr) {
				switch aerr.Code {
				case contract.ErrNoUnassignedJobs:
					fmt.Println(formatter.Dim("Nothing to do: " + aerr.Message + "."))
					return nil
				case contract.ErrEmptyRoster:
					return fmt.Errorf("%s (add technicians with `dispatch tech add`)", aerr.Message)
				}
			}
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatPlan(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Start planning from this date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Only plan this many days ahead (default: full lookahead window)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan without writing assignments")
	cmd.Flags().StringVar(&by, "by", "", "Name recorded in the audit log (default auto-assign)")

	return cmd
}
