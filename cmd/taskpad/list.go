package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/task"
)

var listCmd = &cobra.Command{
	Use:   "list <project_name>",
	Short: "List a project's tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	repo, db, err := openRepo(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	tasks, err := repo.List()
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Printf("No tasks in project %q.\n", projectName)
		return nil
	}

	fmt.Printf("Tasks in %q:\n", projectName)
	for _, t := range tasks {
		fmt.Printf("  #%-4d %s  %s\n", t.ID, statusLabel(t.Status), t.Name)
		if len(t.Description) > 0 {
			fmt.Printf("        %s\n", string(t.Description))
		}
	}
	return nil
}

// statusLabel renders a status as a fixed-width colored label.
func statusLabel(s task.Status) string {
	label := fmt.Sprintf("%-12s", s)
	switch s {
	case task.StatusPending:
		return color.YellowString(label)
	case task.StatusInProgress:
		return color.BlueString(label)
	case task.StatusCompleted:
		return color.GreenString(label)
	default:
		return color.RedString(label)
	}
}
