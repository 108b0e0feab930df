package cli

import (
	"context"
	"fmt"

	"github.com/fieldserve/dispatch/internal/cli/formatter"
	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	var jobRef, date string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Rank technicians for a job with scored reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			job, err := resolveJob(ctx, app, jobRef)
			if err != nil {
				return err
			}
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			out, err := app.Suggest.SuggestForJob(ctx, contract.SuggestRequest{JobID: job.ID, Date: d})
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSuggestions(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&jobRef, "job", "", "Job ID, ID prefix, or title")
	addDateFlag(cmd.Flags(), &date)
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func newConflictsCmd(app *App) *cobra.Command {
	var jobRef, techRef, date string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Explain why an assignment would or would not work",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			job, err := resolveJob(ctx, app, jobRef)
			if err != nil {
				return err
			}
			tech, err := app.Roster.Get(ctx, techRef)
			if err != nil {
				return err
			}
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			report, err := app.Conflicts.Check(ctx, contract.ConflictRequest{
				JobID:  job.ID,
				TechID: tech.ID,
				Date:   d,
			})
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatConflicts(tech.Name, report))
			return nil
		},
	}

	cmd.Flags().StringVar(&jobRef, "job", "", "Job ID, ID prefix, or title")
	cmd.Flags().StringVar(&techRef, "tech", "", "Technician ID or name")
	addDateFlag(cmd.Flags(), &date)
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("tech")

	return cmd
}

func newSlotCmd(app *App) *cobra.Command {
	var jobRef, techRef, date string

	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Suggest the first open start time for a job in a technician's day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			job, err := resolveJob(ctx, app, jobRef)
			if err != nil {
				return err
			}
			tech, err := app.Roster.Get(ctx, techRef)
			if err != nil {
				return err
			}
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			out, err := app.Suggest.SuggestSlot(ctx, contract.SlotRequest{
				JobID:  job.ID,
				TechID: tech.ID,
				Date:   d,
			})
			if err != nil {
				return err
			}
			if !out.Found {
				fmt.Printf("%s has no room for %q that day.\n", tech.Name, job.Title)
				return nil
			}
			fmt.Printf("First open slot for %s: %s\n", tech.Name, formatter.Bold(out.Slot))
			return nil
		},
	}

	cmd.Flags().StringVar(&jobRef, "job", "", "Job ID, ID prefix, or title")
	cmd.Flags().StringVar(&techRef, "tech", "", "Technician ID or name")
	addDateFlag(cmd.Flags(), &date)
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("tech")

	return cmd
}
