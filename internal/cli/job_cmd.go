package cli

import (
	"context"
	"fmt"

	"github.com/fieldserve/dispatch/internal/cli/formatter"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/spf13/cobra"
)

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs",
	}

	cmd.AddCommand(
		newJobAddCmd(app),
		newJobListCmd(app),
		newJobShowCmd(app),
		newJobStatusCmd(app),
	)

	return cmd
}

func newJobAddCmd(app *App) *cobra.Command {
	var (
		title    string
		category string
		duration string
		address  string
		zone     string
		date     string
		start    string
		certs    []string
		crew     int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a job",
		RunE: func(cmd *cobra.Command, args []string) error {
			j := &domain.Job{
				Title:             title,
				Category:          category,
				EstimatedDuration: duration,
				ServiceAddress:    address,
				Zone:              zone,
				ScheduledTime:     start,
				RequiredCerts:     certs,
				CrewRequired:      crew,
			}
			if d, err := parseDateFlag(date); err != nil {
				return err
			} else if d != nil {
				j.ScheduledDate = d
			}

			if err := app.Jobs.Create(context.Background(), j); err != nil {
				return err
			}
			fmt.Printf("Created job %s (%s)\n", j.Title, j.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Job title")
	cmd.Flags().StringVar(&category, "category", "", "Service category (e.g. \"HVAC Repair\")")
	cmd.Flags().StringVar(&duration, "duration", "", "Estimated duration (\"90\", \"2 hours\", \"45 min\")")
	cmd.Flags().StringVar(&address, "address", "", "Service address")
	cmd.Flags().StringVar(&zone, "zone", "", "Service zone")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "time", "", "Scheduled start time (HH:MM)")
	cmd.Flags().StringSliceVar(&certs, "certs", nil, "Required certifications (comma-separated)")
	cmd.Flags().IntVar(&crew, "crew-required", 0, "Minimum crew size")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newJobListCmd(app *App) *cobra.Command {
	var unassigned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var (
				jobs []*domain.Job
				err  error
			)
			if unassigned {
				jobs, err = app.Jobs.ListUnassigned(ctx)
			} else {
				jobs, err = app.Jobs.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}
			fmt.Println(formatter.FormatJobList(jobs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unassigned, "unassigned", false, "Only jobs with no live technician")
	return cmd
}

func newJobShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <job>",
		Short: "Show a job, including its assignment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			job, err := resolveJob(ctx, app, args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatJobDetail(job))

			history, err := app.Assign.History(ctx, job.ID)
			if err != nil {
				return err
			}
			if len(history) > 0 {
				fmt.Println(formatter.Header("History"))
				fmt.Println(formatter.FormatHistory(history))
			}
			return nil
		},
	}
	return cmd
}

func newJobStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <job> <status>",
		Short: "Set a job's status (pending|scheduled|in_progress|completed|cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			job, err := resolveJob(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.JobStatus(args[1])
			if err := app.Jobs.SetStatus(ctx, job.ID, status); err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", job.Title, status)
			return nil
		},
	}
	return cmd
}
