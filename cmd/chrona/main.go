package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/chrona/internal/cli"
	"github.com/alexanderramin/chrona/internal/db"
	"github.com/alexanderramin/chrona/internal/mutation"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/alexanderramin/chrona/internal/selector"
	"github.com/alexanderramin/chrona/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.chrona/chrona.db
	dbPath := os.Getenv("CHRONA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".chrona", "chrona.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	repos := mutation.Repos{
		Workspaces:  repository.NewSQLiteWorkspaceRepo(database),
		Projects:    repository.NewSQLiteProjectRepo(database),
		SubProjects: repository.NewSQLiteSubProjectRepo(database),
		Milestones:  repository.NewSQLiteMilestoneRepo(database),
		Tasks:       repository.NewSQLiteTaskRepo(database),
		Settings:    repository.NewSQLiteSettingsRepo(database),
	}

	// Load the aggregate once; mutations keep it converged afterwards.
	st := store.New(repository.NewSQLiteTimelineRepo(database).Load)
	if err := st.Refresh(context.Background()); err != nil {
		return err
	}

	app := &cli.App{
		Store:     st,
		Mutator:   mutation.NewMutator(st, repos),
		Selectors: selector.New(),
	}

	// Detect interactive terminal: the bare command opens the board only
	// when attached to one.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	err = rootCmd.Execute()

	// Drain debounced edits before the process exits.
	app.Mutator.Flush()
	return err
}
