package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/task"
)

var advanceCmd = &cobra.Command{
	Use:   "advance <project_name> <task_id>",
	Short: "Move a task one step forward in its lifecycle",
	Long: `Move a task one step forward in its lifecycle.

Transitions are forward-only:
  pending -> in_progress -> completed

Advancing a completed task is a no-op that reports completed.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdvance,
}

func runAdvance(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	id, err := parseTaskID(args[1])
	if err != nil {
		return err
	}

	repo, db, err := openRepo(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := repo.Advance(id)
	if err != nil {
		return err
	}

	if status == task.StatusCompleted {
		fmt.Printf("Task #%d is %s\n", id, status)
	} else {
		fmt.Printf("Task #%d moved to %s\n", id, status)
	}
	return nil
}
