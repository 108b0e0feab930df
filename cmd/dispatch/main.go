package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldserve/dispatch/internal/cli"
	"github.com/fieldserve/dispatch/internal/db"
	"github.com/fieldserve/dispatch/internal/repository"
	"github.com/fieldserve/dispatch/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.dispatch/dispatch.db
	dbPath := os.Getenv("DISPATCH_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".dispatch", "dispatch.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	techRepo := repository.NewSQLiteTechnicianRepo(database)
	jobRepo := repository.NewSQLiteJobRepo(database)
	eventRepo := repository.NewSQLiteAssignmentEventRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to stderr when DISPATCH_LOG is set.
	var observers []service.UseCaseObserver
	if os.Getenv("DISPATCH_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Roster:     service.NewRosterService(techRepo),
		Jobs:       service.NewJobService(jobRepo, techRepo),
		Suggest:    service.NewSuggestService(jobRepo, techRepo),
		Conflicts:  service.NewConflictService(jobRepo, techRepo),
		Assign:     service.NewAssignService(jobRepo, techRepo, eventRepo, uow, observers...),
		AutoAssign: service.NewAutoAssignService(jobRepo, techRepo, uow, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
