// Package output provides styled terminal output helpers (success, error,
// warning, task formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/tasklist/internal/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	assigneeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Checkbox returns "[x]" for completed tasks and "[ ]" otherwise
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// AssigneeTag formats the assignee label shown next to each task
func AssigneeTag(assignee string) string {
	return "Assigned to: " + assignee
}

// FormatTask formats one task with its 1-based position
// e.g. "  2. [x] Buy milk  Assigned to: Alice"
func FormatTask(pos int, task models.Task) string {
	text := task.Text
	if task.Completed {
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s %s %s  %s",
		subtleStyle.Render(fmt.Sprintf("%3d.", pos)),
		Checkbox(task.Completed),
		text,
		assigneeStyle.Render(AssigneeTag(task.Assignee)))
}

// Summary returns the "N active, M completed" footer
func Summary(active, completed int) string {
	return subtleStyle.Render(fmt.Sprintf("%d active, %d completed", active, completed))
}

// FilterLabel describes a filter for headers, e.g. "active tasks for Alice"
func FilterLabel(f models.Filter) string {
	var sb strings.Builder
	if f.Status == "" || f.Status == models.StatusAll {
		sb.WriteString("all tasks")
	} else {
		sb.WriteString(string(f.Status) + " tasks")
	}
	if f.Assignee != "" && f.Assignee != models.AssigneeAll {
		sb.WriteString(" for " + f.Assignee)
	}
	return titleStyle.Render(sb.String())
}

// TaskMarkdown renders tasks as a GitHub-style checklist
func TaskMarkdown(title string, tasks []models.Task) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("# " + title + "\n\n")
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s _(%s)_\n", mark, t.Text, AssigneeTag(t.Assignee)))
	}
	return sb.String()
}
