package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <project_name> <task_id> <new_name>",
	Short: "Rename a task",
	Long: `Rename a task.

The task's id and status are unchanged; only the name is overwritten.`,
	Args: cobra.ExactArgs(3),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	id, err := parseTaskID(args[1])
	if err != nil {
		return err
	}
	newName := args[2]

	repo, db, err := openRepo(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Rename(id, newName); err != nil {
		return err
	}

	fmt.Printf("Renamed task #%d to %q\n", id, newName)
	return nil
}
