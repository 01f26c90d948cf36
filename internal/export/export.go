// Package export writes the task list in interchange formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/marcus/tasklist/internal/models"
	"github.com/marcus/tasklist/internal/output"
	"gopkg.in/yaml.v3"
)

// Format is an export format name
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatCSV, FormatMarkdown, FormatPDF}
}

// ParseFormat accepts a format name or common alias
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown format %s (valid: json, yaml, csv, markdown, pdf)", s)
}

// Export renders tasks in format
func Export(tasks []models.Task, format Format) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(tasks, "", "  ")
	case FormatYAML:
		return yaml.Marshal(tasks)
	case FormatCSV:
		return exportCSV(tasks)
	case FormatMarkdown:
		return []byte(output.TaskMarkdown("Tasks", tasks)), nil
	case FormatPDF:
		return exportPDF(tasks)
	}
	return nil, fmt.Errorf("unknown format %s", format)
}

func exportCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"position", "text", "assignee", "completed"}); err != nil {
		return nil, err
	}
	for i, t := range tasks {
		row := []string{strconv.Itoa(i + 1), t.Text, t.Assignee, strconv.FormatBool(t.Completed)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// exportPDF uses the core Arial font, which only covers cp1252. Characters
// outside it (CJK, emoji) are printed as '.'; use markdown or json for those.
func exportPDF(tasks []models.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.Cell(0, 6, "No tasks")
	}
	for i, t := range tasks {
		line := fmt.Sprintf("%d. %s %s  (%s)", i+1, output.Checkbox(t.Completed), t.Text, output.AssigneeTag(t.Assignee))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
