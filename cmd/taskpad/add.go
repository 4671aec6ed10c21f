package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <project_name> <task_name>",
	Short: "Add a task to a project",
	Long: `Add a task to a project.

The task starts in the pending state and is assigned the next id.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	projectName, taskName := args[0], args[1]

	repo, db, err := openRepo(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := repo.Add(taskName)
	if err != nil {
		return err
	}

	fmt.Printf("Added task #%d to project %q: %s\n", id, projectName, taskName)
	return nil
}
