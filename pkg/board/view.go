package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/tasklist/internal/output"
	"github.com/marcus/tasklist/pkg/board/keymap"
)

// renderView renders the complete board
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var body string
	if m.Form != nil {
		body = m.Form.Form.View()
	} else {
		body = m.renderRows()
	}

	panel := panelStyle.Width(m.Width - 2).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		panel,
		m.renderFooter(),
		m.renderStatus(),
		m.renderHints(),
	)
}

func (m Model) renderCompact() string {
	return fmt.Sprintf("Terminal too small (%dx%d), need %dx%d", m.Width, m.Height, MinWidth, MinHeight)
}

func (m Model) renderHeader() string {
	f := m.List.Filter()
	return headerStyle.Render("tasklist") + " " +
		filterStyle.Render(fmt.Sprintf("status: %s", f.Status)) + "  " +
		filterStyle.Render(fmt.Sprintf("assignee: %s", f.Assignee))
}

// renderRows draws the visible slice of task rows
func (m Model) renderRows() string {
	rows := m.visibleRows()
	if len(rows) == 0 {
		if m.List.Len() == 0 {
			return subtleStyle.Render("No tasks yet. Press n to add one.")
		}
		return subtleStyle.Render("No tasks match the current filters.")
	}

	width := m.Width - 6
	end := min(m.ScrollOffset+m.rowsHeight(), len(rows))

	lines := make([]string, 0, end-m.ScrollOffset)
	for vi := m.ScrollOffset; vi < end; vi++ {
		i := rows[vi]
		task, _ := m.List.Task(i)
		label := ""
		if m.Editing && i == m.EditIndex {
			label = m.EditInput.View()
		}
		lines = append(lines, RenderRow(task, vi == m.Cursor, label, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	active, completed := m.List.Counts()
	footer := output.Summary(active, completed)
	if n := len(m.visibleRows()); n != m.List.Len() {
		footer += subtleStyle.Render(fmt.Sprintf(" (%d shown)", n))
	}
	return footer
}

// renderStatus draws the single status slot, blank when expired
func (m Model) renderStatus() string {
	msg := m.Status.Message()
	if msg == "" {
		return ""
	}
	if m.Status.IsError() {
		return statusErrStyle.Render(msg)
	}
	return statusOKStyle.Render(msg)
}

func (m Model) renderHints() string {
	if pending := m.Keymap.PendingKey(); pending != "" {
		return helpStyle.Render(pending + " …")
	}
	switch m.currentContext() {
	case keymap.ContextEdit:
		return helpStyle.Render("enter save  esc discard")
	case keymap.ContextForm:
		return helpStyle.Render("enter next  esc cancel")
	}
	return helpStyle.Render("n new  space toggle  e edit  x delete  s status  a assignee  ? help  q quit")
}

func (m Model) renderHelp() string {
	help := m.Keymap.GenerateHelp(keymap.ContextMain, keymap.ContextEdit, keymap.ContextForm, keymap.ContextGlobal)
	lines := strings.Split(strings.TrimLeft(help, "\n"), "\n")
	if limit := m.Height - 4; len(lines) > limit {
		lines = lines[:limit]
	}
	return panelStyle.Width(m.Width - 2).Render(
		headerStyle.Render("Keys") + "\n" + helpStyle.Render(strings.Join(lines, "\n")),
	)
}
