package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <project_name> <task_id> <description>",
	Short: "Set a task's description",
	Args:  cobra.ExactArgs(3),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	id, err := parseTaskID(args[1])
	if err != nil {
		return err
	}
	description := args[2]

	repo, db, err := openRepo(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.SetDescription(id, []byte(description)); err != nil {
		return err
	}

	fmt.Printf("Updated description of task #%d\n", id)
	return nil
}
