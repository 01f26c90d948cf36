package board

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tasklist/internal/models"
	"github.com/marcus/tasklist/internal/output"
)

const (
	cursorMark = "▸ "
	noCursor   = "  "
	deleteHint = "[x delete]"
)

// RenderRow draws one task: cursor, checkbox, label, assignee tag, and the
// delete control on the selected row. label replaces the task text when
// non-empty, which is how the inline editor is shown in place.
func RenderRow(task models.Task, selected bool, label string, width int) string {
	var sb strings.Builder
	if selected {
		sb.WriteString(selectedStyle.Render(cursorMark))
	} else {
		sb.WriteString(noCursor)
	}

	sb.WriteString(output.Checkbox(task.Completed))
	sb.WriteString(" ")

	switch {
	case label != "":
		sb.WriteString(label)
	case task.Completed:
		sb.WriteString(doneTextStyle.Render(task.Text))
	case selected:
		sb.WriteString(selectedStyle.Render(task.Text))
	default:
		sb.WriteString(task.Text)
	}

	sb.WriteString("  ")
	sb.WriteString(assigneeStyle.Render(output.AssigneeTag(task.Assignee)))

	if selected && label == "" {
		sb.WriteString("  ")
		sb.WriteString(deleteStyle.Render(deleteHint))
	}

	row := sb.String()
	if width > 0 && ansi.StringWidth(row) > width {
		row = ansi.Truncate(row, width, "…")
	}
	return row
}
