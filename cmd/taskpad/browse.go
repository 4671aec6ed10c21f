package main

import (
	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/task"
	"github.com/taskpad-dev/taskpad/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <project_name>",
	Short: "Browse a project's tasks interactively",
	Long: `Browse a project's tasks in an interactive view.

The list refreshes automatically when another taskpad process writes to
the project database. Type to filter by name, press esc to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	_, projects, err := projectStore()
	if err != nil {
		return err
	}

	db, err := projects.Open(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	return tui.Run(projectName, task.NewRepository(db), db.Path())
}
