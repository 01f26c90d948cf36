// Package board is the interactive terminal view of the task list.
package board

import (
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tasklist/internal/config"
	"github.com/marcus/tasklist/internal/models"
	"github.com/marcus/tasklist/internal/status"
	"github.com/marcus/tasklist/internal/todo"
	"github.com/marcus/tasklist/pkg/board/keymap"
)

// MinWidth is the minimum terminal width for proper display
const MinWidth = 40

// MinHeight is the minimum terminal height for proper display
const MinHeight = 10

// chromeHeight is the number of lines used around the task rows
const chromeHeight = 8

// ClearStatusMsg expires the status message of generation Gen
type ClearStatusMsg struct {
	Gen uint64
}

// Model is the Bubble Tea model for the board
type Model struct {
	List    *todo.List
	BaseDir string // "" disables filter persistence
	Keymap  *keymap.Registry

	Width  int
	Height int

	// Cursor indexes the visible rows, not the list
	Cursor       int
	ScrollOffset int

	Editing   bool
	EditIndex int // list position being edited
	EditInput textinput.Model

	Form *AddForm

	ShowHelp bool

	Status      status.Line
	StatusDelay time.Duration
}

// Options configures NewModel
type Options struct {
	BaseDir     string
	StatusDelay time.Duration
	Keymap      *keymap.Registry
	Filter      *models.Filter
}

// NewModel creates a board over list
func NewModel(list *todo.List, opts Options) Model {
	km := opts.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}
	delay := opts.StatusDelay
	if delay <= 0 {
		delay = status.DefaultDelay
	}
	if opts.Filter != nil {
		list.SetFilter(*opts.Filter)
		// A remembered assignee may no longer exist
		if !slices.Contains(list.AssigneeOptions(), list.Filter().Assignee) {
			list.SetAssigneeFilter(models.AssigneeAll)
		}
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500

	return Model{
		List:        list,
		BaseDir:     opts.BaseDir,
		Keymap:      km,
		EditInput:   ti,
		StatusDelay: delay,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ensureCursorVisible()
		if m.Form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case ClearStatusMsg:
		m.Status.Expire(msg.Gen)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.Form != nil {
		return m.updateForm(msg)
	}
	if m.Editing {
		var cmd tea.Cmd
		m.EditInput, cmd = m.EditInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// currentContext returns the keymap context for the active UI state
func (m Model) currentContext() keymap.Context {
	switch {
	case m.Form != nil:
		return keymap.ContextForm
	case m.Editing:
		return keymap.ContextEdit
	case m.ShowHelp:
		return keymap.ContextHelp
	}
	return keymap.ContextMain
}

// visibleRows returns the list positions shown, in order
func (m Model) visibleRows() []int {
	return m.List.VisibleIndexes()
}

// selected returns the list position under the cursor
func (m Model) selected() (int, bool) {
	rows := m.visibleRows()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return 0, false
	}
	return rows[m.Cursor], true
}

// rowsHeight is how many task rows fit on screen
func (m Model) rowsHeight() int {
	if m.Height == 0 {
		return 1 << 16
	}
	return max(m.Height-chromeHeight, 1)
}

// clampCursor keeps the cursor on a visible row
func (m *Model) clampCursor() {
	n := len(m.visibleRows())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) ensureCursorVisible() {
	m.clampCursor()
	h := m.rowsHeight()
	if m.Cursor < m.ScrollOffset {
		m.ScrollOffset = m.Cursor
	}
	if m.Cursor >= m.ScrollOffset+h {
		m.ScrollOffset = m.Cursor - h + 1
	}
	if m.ScrollOffset < 0 {
		m.ScrollOffset = 0
	}
}

// showStatus replaces the status line and schedules its own expiry
func (m *Model) showStatus(message string) tea.Cmd {
	if message == "" {
		return nil
	}
	gen := m.Status.Show(message)
	return m.expireAfter(gen)
}

func (m *Model) showError(err error) tea.Cmd {
	gen := m.Status.ShowError("Error: " + err.Error())
	return m.expireAfter(gen)
}

func (m *Model) expireAfter(gen uint64) tea.Cmd {
	return tea.Tick(m.StatusDelay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Gen: gen}
	})
}

// saveFilter persists the filter selection for the next session. It runs
// inside Update so successive selections are written in order.
func (m Model) saveFilter() {
	if m.BaseDir == "" {
		return
	}
	if err := config.SetBoardFilter(m.BaseDir, m.List.Filter()); err != nil {
		slog.Warn("save board filter", "err", err)
	}
}
