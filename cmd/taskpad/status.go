package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/task"
)

var statusCmd = &cobra.Command{
	Use:   "status <project_name>",
	Short: "Show a project's task counts by status",
	RunE:  runStatus,
	Args:  cobra.ExactArgs(1),
}

func runStatus(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	_, projects, err := projectStore()
	if err != nil {
		return err
	}

	meta, err := projects.Metadata(projectName)
	if err == nil {
		fmt.Printf("Project: %s (created %s)\n", meta.Name, meta.CreatedAt.Format("2006-01-02"))
	} else {
		fmt.Printf("Project: %s\n", projectName)
	}

	repo, db, err := openRepo(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := repo.CountByStatus()
	if err != nil {
		return err
	}

	total := 0
	for _, status := range []task.Status{task.StatusPending, task.StatusInProgress, task.StatusCompleted} {
		n := counts[status]
		total += n
		fmt.Printf("  %s %d\n", statusLabel(status), n)
	}

	// Anything outside the enum is corrupt data worth surfacing.
	for _, status := range unknownStatuses(counts) {
		n := counts[status]
		total += n
		fmt.Printf("  %s %d (unrecognized status)\n", statusLabel(status), n)
	}

	fmt.Printf("  %-12s %d\n", "total", total)
	return nil
}

// unknownStatuses returns the statuses in counts that fall outside the
// known enum, sorted so output is stable across runs.
func unknownStatuses(counts map[task.Status]int) []task.Status {
	var unknown []task.Status
	for status := range counts {
		if !status.Valid() {
			unknown = append(unknown, status)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return unknown
}
