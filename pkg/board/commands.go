package board

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/tasklist/internal/models"
	"github.com/marcus/tasklist/pkg/board/keymap"
)

// updateForm forwards a message to the open huh form
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.Form.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form.Form = f
	}

	switch m.Form.Form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.Form = nil
		return m, nil
	}
	return m, cmd
}

// handleKey processes key input using the keymap registry
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.currentContext()

	cmd, found := m.Keymap.Lookup(msg, ctx)
	if found {
		return m.executeCommand(cmd)
	}

	// Unbound keys go to whichever input has focus
	switch ctx {
	case keymap.ContextForm:
		return m.updateForm(msg)
	case keymap.ContextEdit:
		var inputCmd tea.Cmd
		m.EditInput, inputCmd = m.EditInput.Update(msg)
		return m, inputCmd
	}
	return m, nil
}

// executeCommand runs a keymap command
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.ShowHelp = !m.ShowHelp
		return m, nil

	case keymap.CmdClose:
		m.ShowHelp = false
		return m, nil

	case keymap.CmdCursorDown:
		m.Cursor++
		m.ensureCursorVisible()
		return m, nil

	case keymap.CmdCursorUp:
		m.Cursor--
		m.ensureCursorVisible()
		return m, nil

	case keymap.CmdCursorTop:
		m.Cursor = 0
		m.ensureCursorVisible()
		return m, nil

	case keymap.CmdCursorBottom:
		m.Cursor = len(m.visibleRows()) - 1
		m.ensureCursorVisible()
		return m, nil

	case keymap.CmdNewTask:
		m.Form = NewAddForm()
		return m, m.Form.Form.Init()

	case keymap.CmdFormCancel:
		m.Form = nil
		return m, nil

	case keymap.CmdToggleComplete:
		i, ok := m.selected()
		if !ok {
			return m, nil
		}
		msg, err := m.List.Toggle(i)
		m.ensureCursorVisible()
		return m, m.report(msg, err)

	case keymap.CmdEditTask:
		i, ok := m.selected()
		if !ok {
			return m, nil
		}
		task, _ := m.List.Task(i)
		m.Editing = true
		m.EditIndex = i
		m.EditInput.SetValue(task.Text)
		m.EditInput.CursorEnd()
		return m, m.EditInput.Focus()

	case keymap.CmdEditCommit:
		value := m.EditInput.Value()
		m.stopEditing()
		msg, err := m.List.Edit(m.EditIndex, value)
		m.ensureCursorVisible()
		return m, m.report(msg, err)

	case keymap.CmdEditCancel:
		// Leaving the editor any way other than enter discards the text
		m.stopEditing()
		return m, nil

	case keymap.CmdDeleteTask:
		i, ok := m.selected()
		if !ok {
			return m, nil
		}
		before := m.List.Filter()
		msg, err := m.List.Delete(i)
		m.ensureCursorVisible()
		m.saveFilterIfChanged(before)
		return m, m.report(msg, err)

	case keymap.CmdClearCompleted:
		before := m.List.Filter()
		msg, err := m.List.ClearCompleted()
		m.ensureCursorVisible()
		m.saveFilterIfChanged(before)
		return m, m.report(msg, err)

	case keymap.CmdFilterAll:
		return m.setStatusFilter(models.StatusAll)
	case keymap.CmdFilterActive:
		return m.setStatusFilter(models.StatusActive)
	case keymap.CmdFilterCompleted:
		return m.setStatusFilter(models.StatusCompleted)

	case keymap.CmdCycleStatus:
		filters := models.StatusFilters()
		next := (slices.Index(filters, m.List.Filter().Status) + 1) % len(filters)
		return m.setStatusFilter(filters[next])

	case keymap.CmdCycleAssignee:
		opts := m.List.AssigneeOptions()
		next := (slices.Index(opts, m.List.Filter().Assignee) + 1) % len(opts)
		m.List.SetAssigneeFilter(opts[next])
		m.Cursor = 0
		m.ensureCursorVisible()
		m.saveFilter()
		return m, nil

	case keymap.CmdResetFilters:
		if m.List.Filter() == models.DefaultFilter() {
			return m, nil
		}
		m.List.SetFilter(models.DefaultFilter())
		m.Cursor = 0
		m.ensureCursorVisible()
		m.saveFilter()
		return m, nil
	}

	return m, nil
}

func (m Model) setStatusFilter(s models.StatusFilter) (tea.Model, tea.Cmd) {
	if m.List.Filter().Status == s {
		return m, nil
	}
	m.List.SetStatusFilter(s)
	m.Cursor = 0
	m.ensureCursorVisible()
	m.saveFilter()
	return m, nil
}

// submitForm adds the task entered in the form and closes it
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	text, assignee := m.Form.Text, m.Form.Assignee
	m.Form = nil
	msg, err := m.List.Add(text, assignee)
	if err == nil && msg != "" {
		// Select the new task when it is visible
		if rows := m.visibleRows(); len(rows) > 0 && rows[len(rows)-1] == m.List.Len()-1 {
			m.Cursor = len(rows) - 1
		}
	}
	m.ensureCursorVisible()
	return m, m.report(msg, err)
}

func (m *Model) stopEditing() {
	m.Editing = false
	m.EditInput.Blur()
	m.EditInput.SetValue("")
}

// report shows the outcome of a list mutation on the status line
func (m *Model) report(msg string, err error) tea.Cmd {
	if err != nil {
		return m.showError(err)
	}
	return m.showStatus(msg)
}

// saveFilterIfChanged persists the filter when a mutation reset it
func (m Model) saveFilterIfChanged(before models.Filter) {
	if m.List.Filter() != before {
		m.saveFilter()
	}
}
