package cli

import (
	"github.com/fieldserve/dispatch/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Roster     service.RosterService
	Jobs       service.JobService
	Suggest    service.SuggestService
	Conflicts  service.ConflictService
	Assign     service.AssignService
	AutoAssign service.AutoAssignService

	// IsInteractive reports whether stdin is a terminal; interactive
	// pickers and confirm forms only open when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "dispatch" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "dispatch",
		Short: "Technician scheduling and auto-assignment for field service jobs",
	}

	root.AddCommand(
		newTechCmd(app),
		newJobCmd(app),
		newSuggestCmd(app),
		newConflictsCmd(app),
		newSlotCmd(app),
		newAssignCmd(app),
		newUnassignCmd(app),
		newAutoAssignCmd(app),
		newLogCmd(app),
	)

	return root
}
