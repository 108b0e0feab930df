package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldserve/dispatch/internal/cli/formatter"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/spf13/cobra"
)

func newTechCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Manage the technician roster",
	}

	cmd.AddCommand(
		newTechAddCmd(app),
		newTechListCmd(app),
		newTechShowCmd(app),
		newTechRemoveCmd(app),
	)

	return cmd
}

func newTechAddCmd(app *App) *cobra.Command {
	var (
		name     string
		skills   []string
		certs    []string
		zones    []string
		daysOff  []string
		hours    []string
		homeZip  string
		maxJobs  int
		maxHours int
		radius   int
		buffer   int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a technician to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Technician{
				Name:                 name,
				Skills:               skills,
				Certifications:       certs,
				PreferredZones:       zones,
				HomeZip:              homeZip,
				MaxJobsPerDay:        maxJobs,
				MaxHoursPerDay:       maxHours,
				MaxTravelMiles:       radius,
				DefaultBufferMinutes: buffer,
			}
			if len(daysOff) > 0 || len(hours) > 0 {
				t.WorkingHours = domain.WorkingHours{}
			}
			for _, day := range daysOff {
				t.WorkingHours[strings.ToLower(day)] = domain.DayHours{Enabled: false}
			}
			for _, spec := range hours {
				day, window, err := parseHoursFlag(spec)
				if err != nil {
					return err
				}
				t.WorkingHours[day] = window
			}

			if err := app.Roster.Create(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", t.Name, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Technician name")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Skill tags (comma-separated)")
	cmd.Flags().StringSliceVar(&certs, "certs", nil, "Certifications (comma-separated)")
	cmd.Flags().StringSliceVar(&zones, "zones", nil, "Preferred zones (comma-separated)")
	cmd.Flags().StringSliceVar(&daysOff, "day-off", nil, "Weekday off (repeatable, e.g. sunday)")
	cmd.Flags().StringSliceVar(&hours, "hours", nil, "Working window (repeatable, e.g. monday=08:00-17:00)")
	cmd.Flags().StringVar(&homeZip, "zip", "", "Home base ZIP code")
	cmd.Flags().IntVar(&maxJobs, "max-jobs", 0, "Max jobs per day (default 4)")
	cmd.Flags().IntVar(&maxHours, "max-hours", 0, "Max hours per day (default 8)")
	cmd.Flags().IntVar(&radius, "radius", 0, "Travel radius in miles (default 25)")
	cmd.Flags().IntVar(&buffer, "buffer", 0, "Buffer minutes between jobs (default 30)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// parseHoursFlag parses "monday=08:00-17:00" into a weekday key and window.
func parseHoursFlag(spec string) (string, domain.DayHours, error) {
	day, window, ok := strings.Cut(spec, "=")
	if !ok {
		return "", domain.DayHours{}, fmt.Errorf("invalid hours %q, want day=HH:MM-HH:MM", spec)
	}
	start, end, ok := strings.Cut(window, "-")
	if !ok {
		return "", domain.DayHours{}, fmt.Errorf("invalid hours %q, want day=HH:MM-HH:MM", spec)
	}
	return strings.ToLower(day), domain.DayHours{Enabled: true, Start: start, End: end}, nil
}

func newTechListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List technicians",
		RunE: func(cmd *cobra.Command, args []string) error {
			techs, err := app.Roster.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(techs) == 0 {
				fmt.Println("No technicians on the roster.")
				return nil
			}
			fmt.Println(formatter.FormatTechList(techs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include deactivated technicians")
	return cmd
}

func newTechShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <tech>",
		Short: "Show a technician's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tech, err := app.Roster.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatTechDetail(tech))
			return nil
		},
	}
	return cmd
}

func newTechRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <tech>",
		Short: "Deactivate a technician",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tech, err := app.Roster.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Roster.Deactivate(ctx, tech.ID); err != nil {
				return err
			}
			fmt.Printf("Deactivated %s. Their jobs now count as unassigned.\n", tech.Name)
			return nil
		},
	}
	return cmd
}
