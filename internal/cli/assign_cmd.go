package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldserve/dispatch/internal/cli/formatter"
	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	var (
		jobRef  string
		techRef string
		crew    []string
		by      string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a technician (or crew) to a job",
		Long: "Assign a technician to a job. With --tech the choice is yours; " +
			"without it an interactive picker opens over the scored candidates. " +
			"Conflicted assignments ask for confirmation before committing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			job, err := resolveJob(ctx, app, jobRef)
			if err != nil {
				return err
			}

			if len(crew) > 0 {
				return assignCrew(ctx, app, job, crew, by)
			}

			var score *int
			techID := ""
			techName := ""

			if techRef != "" {
				tech, err := app.Roster.Get(ctx, techRef)
				if err != nil {
					return err
				}
				techID, techName = tech.ID, tech.Name
			} else {
				if !app.interactive() {
					return fmt.Errorf("--tech is required outside an interactive terminal")
				}
				sugg, err := app.Suggest.SuggestForJob(ctx, contract.SuggestRequest{JobID: job.ID})
				if err != nil {
					return err
				}
				pick, err := runPicker(job.Title, sugg.Suggestions)
				if err != nil {
					return err
				}
				if pick == nil {
					fmt.Println("Cancelled.")
					return nil
				}
				techID, techName = pick.TechID, pick.TechName
				s := pick.Score
				score = &s
			}

			report, err := app.Conflicts.Check(ctx, contract.ConflictRequest{JobID: job.ID, TechID: techID})
			if err != nil {
				return err
			}
			if report.HasConflicts {
				fmt.Println(formatter.FormatConflicts(techName, report))
				ok, err := shouldProceed(app, report, force)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			updated, err := app.Assign.Assign(ctx, contract.AssignRequest{
				JobID:      job.ID,
				TechID:     techID,
				AssignedBy: by,
				Score:      score,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Assigned %s to %s\n", formatter.Bold(updated.AssignedTechName), updated.Title)

			if updated.ScheduledTime == "" && updated.ScheduledDate != nil {
				slot, err := app.Suggest.SuggestSlot(ctx, contract.SlotRequest{JobID: job.ID, TechID: techID})
				if err == nil && slot.Found {
					fmt.Println(formatter.Dim(fmt.Sprintf("Tip: first open slot that day is %s.", slot.Slot)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobRef, "job", "", "Job ID, ID prefix, or title")
	cmd.Flags().StringVar(&techRef, "tech", "", "Technician ID or name (omit for interactive picker)")
	cmd.Flags().StringSliceVar(&crew, "crew", nil, "Crew members as name:role pairs (one role must be lead)")
	cmd.Flags().StringVar(&by, "by", "", "Name recorded in the audit log")
	cmd.Flags().BoolVar(&force, "force", false, "Commit even when hard conflicts exist")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

// shouldProceed decides whether a conflicted assignment goes ahead: an
// interactive confirm form when there is a terminal, otherwise warnings
// pass and errors need --force.
func shouldProceed(app *App, report *contract.ConflictReport, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if app.interactive() {
		return confirmAssignment(
			"Assign despite conflicts?",
			fmt.Sprintf("%d conflict(s) found. Hard conflicts can double-book a technician.", len(report.Conflicts)),
		)
	}
	if report.HasErrors {
		return false, fmt.Errorf("refusing to assign over a hard conflict (use --force to override)")
	}
	return true, nil
}

func assignCrew(ctx context.Context, app *App, job *domain.Job, crew []string, by string) error {
	members := make([]domain.CrewMember, 0, len(crew))
	for _, spec := range crew {
		ref, role, ok := strings.Cut(spec, ":")
		if !ok {
			return fmt.Errorf("invalid crew member %q, want name:role", spec)
		}
		tech, err := app.Roster.Get(ctx, ref)
		if err != nil {
			return err
		}
		members = append(members, domain.CrewMember{
			TechID: tech.ID,
			Role:   domain.CrewRole(strings.ToLower(role)),
		})
	}

	updated, err := app.Assign.AssignCrew(ctx, contract.CrewAssignRequest{
		JobID:      job.ID,
		Members:    members,
		AssignedBy: by,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Assigned a crew of %d to %s (lead: %s)\n",
		len(updated.Crew), updated.Title, formatter.Bold(updated.AssignedTechName))
	return nil
}

func newUnassignCmd(app *App) *cobra.Command {
	var jobRef, by string

	cmd := &cobra.Command{
		Use:   "unassign",
		Short: "Remove a job's technician or crew",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			job, err := resolveJob(ctx, app, jobRef)
			if err != nil {
				return err
			}
			updated, err := app.Assign.Unassign(ctx, job.ID, by)
			if err != nil {
				return err
			}
			fmt.Printf("%s is unassigned (%s)\n", updated.Title, updated.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobRef, "job", "", "Job ID, ID prefix, or title")
	cmd.Flags().StringVar(&by, "by", "", "Name recorded in the audit log")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
