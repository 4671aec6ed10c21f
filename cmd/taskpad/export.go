package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <project_name>",
	Short: "Export a project's tasks",
	Long: `Export a project's tasks as JSON, CSV, or PDF.

By default the result is written to stdout; use -o to write a file.
PDF output requires -o.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv, or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if format == export.FormatPDF && exportOutput == "" {
		return fmt.Errorf("pdf export requires --output")
	}

	repo, db, err := openRepo(projectName)
	if err != nil {
		return err
	}
	defer db.Close()

	tasks, err := repo.List()
	if err != nil {
		return err
	}

	data, err := export.Render(projectName, tasks, format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}
	fmt.Printf("Exported %d tasks to %s\n", len(tasks), exportOutput)
	return nil
}
