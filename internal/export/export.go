// Package export renders a project's task list as JSON, CSV, or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/taskpad-dev/taskpad/internal/task"
)

// Format identifies an export output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat parses a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, csv, or pdf)", s)
	}
}

// Render serializes the tasks of the named project in the given format.
func Render(projectName string, tasks []task.Task, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(tasks)
	case FormatCSV:
		return renderCSV(tasks)
	case FormatPDF:
		return renderPDF(projectName, tasks)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func renderJSON(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return json.MarshalIndent(tasks, "", "  ")
}

func renderCSV(tasks []task.Task) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"id", "name", "status", "description"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tasks {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			string(t.Status),
			string(t.Description),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return []byte(b.String()), nil
}

func renderPDF(projectName string, tasks []task.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, fmt.Sprintf("Tasks: %s", projectName))
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		line := fmt.Sprintf("#%d [%s] %s", t.ID, t.Status, t.Name)
		if len(t.Description) > 0 {
			line += " - " + string(t.Description)
		}
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
