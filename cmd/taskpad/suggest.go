package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/suggest"
	"github.com/taskpad-dev/taskpad/internal/task"
)

var (
	suggestAdd bool
	suggestMax int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <project_name>",
	Short: "Suggest next tasks from the project plan",
	Long: `Suggest next tasks for a project.

The project's plan note and current task list are sent to the Anthropic
API, which proposes candidate next tasks. With --add, the suggestions are
inserted as pending tasks.

Requires ANTHROPIC_API_KEY (or anthropic.api_key in the config file), or
suggest.use_bedrock for AWS Bedrock.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestAdd, "add", false, "Add the suggestions as pending tasks")
	suggestCmd.Flags().IntVar(&suggestMax, "max", 5, "Maximum number of suggestions")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	cfg, projects, err := projectStore()
	if err != nil {
		return err
	}

	db, err := projects.Open(projectName)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := task.NewRepository(db)

	plan, err := os.ReadFile(projects.PlanPath(projectName))
	if err != nil {
		return fmt.Errorf("read plan file: %w", err)
	}

	tasks, err := repo.List()
	if err != nil {
		return err
	}

	client, err := suggest.NewClient(suggest.ClientConfig{
		Model:         cfg.Suggest.Model,
		MaxTokens:     cfg.Suggest.MaxTokens,
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Suggest.UseBedrock,
		AWSRegion:     cfg.Suggest.AWSRegion,
		AWSProfile:    cfg.Suggest.AWSProfile,
	})
	if err != nil {
		return err
	}

	suggestions, err := client.Suggest(cmd.Context(), string(plan), tasks, suggestMax)
	if err != nil {
		return err
	}

	fmt.Printf("Suggested tasks for %q:\n", projectName)
	for _, name := range suggestions {
		if !suggestAdd {
			fmt.Printf("  - %s\n", name)
			continue
		}

		id, err := repo.Add(name)
		if err != nil {
			return err
		}
		printStatus("✓", fmt.Sprintf("Added task #%d: %s", id, name), color.FgGreen)
	}

	if !suggestAdd {
		fmt.Println("\nRe-run with --add to insert them as pending tasks.")
	}
	return nil
}
