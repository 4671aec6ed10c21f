package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/config"
	"github.com/taskpad-dev/taskpad/internal/project"
	"github.com/taskpad-dev/taskpad/internal/store"
	"github.com/taskpad-dev/taskpad/internal/task"
)

var rootCmd = &cobra.Command{
	Use:   "taskpad",
	Short: "Project and task tracker for the command line",
	Long: `Taskpad tracks projects and their tasks from the command line.

Each project is a folder with a plan note and its own SQLite task
database. Tasks move forward through a fixed lifecycle:
pending -> in_progress -> completed.

Typical flow:
  taskpad init myproject
  taskpad add myproject "Write spec"
  taskpad advance myproject 1`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// projectStore loads configuration and returns the project store for the
// configured base directory.
func projectStore() (*config.Config, *project.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	base, err := cfg.ResolveBaseDir()
	if err != nil {
		return nil, nil, err
	}
	return cfg, project.NewStore(base), nil
}

// openRepo opens the named project's store and wraps it in a task
// repository. The caller must close the returned DB.
func openRepo(name string) (*task.Repository, *store.DB, error) {
	_, projects, err := projectStore()
	if err != nil {
		return nil, nil, err
	}

	db, err := projects.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return task.NewRepository(db), db, nil
}

// parseTaskID parses a task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
