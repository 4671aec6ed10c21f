package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/project"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init <project_name>",
	Short: "Create a new project workspace",
	Long: `Create a new project workspace.

This sets up everything a project needs:
  - The project folder under the configured base directory
  - A <name>.plan note for free-form planning
  - A .taskpad.yaml metadata file
  - The SQLite task database with its schema

Re-running init on an existing project is an error unless --force is
given. With --force, existing tasks and plan notes are preserved; only
missing pieces are recreated.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if the project already exists")
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, projects, err := projectStore()
	if err != nil {
		return err
	}

	if err := projects.Init(name, initForce); err != nil {
		if errors.Is(err, project.ErrExists) {
			return fmt.Errorf("project %q already exists (use --force to reinitialize)", name)
		}
		return err
	}

	printStatus("✓", fmt.Sprintf("Created project folder: %s", projects.Dir(name)), color.FgGreen)
	printStatus("✓", fmt.Sprintf("Created plan file: %s", projects.PlanPath(name)), color.FgGreen)
	printStatus("✓", fmt.Sprintf("Created task database: %s", projects.DBPath(name)), color.FgGreen)

	fmt.Printf("\n%s Project %q is ready.\n\n", color.GreenString("✓"), name)
	fmt.Println("Next steps:")
	fmt.Printf("  taskpad add %s \"your first task\"\n", name)
	fmt.Printf("  taskpad list %s\n", name)

	return nil
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
