package cli

import (
	"context"
	"fmt"

	"github.com/fieldserve/dispatch/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent assignment activity across all jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Assign.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No assignment activity yet.")
				return nil
			}
			fmt.Println(formatter.FormatHistory(events))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of events to show")
	return cmd
}
