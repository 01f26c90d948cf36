package keymap

// DefaultBindings returns the default key bindings for the board
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},

		// Main list
		{Key: "q", Command: CmdQuit, Context: ContextMain, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextMain, Description: "Toggle help"},
		{Key: "j", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},
		{Key: "home", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},
		{Key: "end", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},

		{Key: "n", Command: CmdNewTask, Context: ContextMain, Description: "New task"},
		{Key: "space", Command: CmdToggleComplete, Context: ContextMain, Description: "Toggle complete"},
		{Key: "enter", Command: CmdEditTask, Context: ContextMain, Description: "Edit task text"},
		{Key: "e", Command: CmdEditTask, Context: ContextMain, Description: "Edit task text"},
		{Key: "x", Command: CmdDeleteTask, Context: ContextMain, Description: "Delete task"},
		{Key: "delete", Command: CmdDeleteTask, Context: ContextMain, Description: "Delete task"},
		{Key: "C", Command: CmdClearCompleted, Context: ContextMain, Description: "Clear completed"},

		{Key: "1", Command: CmdFilterAll, Context: ContextMain, Description: "Show all"},
		{Key: "2", Command: CmdFilterActive, Context: ContextMain, Description: "Show active"},
		{Key: "3", Command: CmdFilterCompleted, Context: ContextMain, Description: "Show completed"},
		{Key: "s", Command: CmdCycleStatus, Context: ContextMain, Description: "Cycle status filter"},
		{Key: "a", Command: CmdCycleAssignee, Context: ContextMain, Description: "Cycle assignee filter"},
		{Key: "esc", Command: CmdResetFilters, Context: ContextMain, Description: "Reset filters"},

		// Inline edit: everything except these goes to the text input
		{Key: "enter", Command: CmdEditCommit, Context: ContextEdit, Description: "Save text"},
		{Key: "esc", Command: CmdEditCancel, Context: ContextEdit, Description: "Discard edit"},
		{Key: "tab", Command: CmdEditCancel, Context: ContextEdit, Description: "Discard edit"},
		{Key: "up", Command: CmdEditCancel, Context: ContextEdit, Description: "Discard edit"},
		{Key: "down", Command: CmdEditCancel, Context: ContextEdit, Description: "Discard edit"},

		// New task form
		{Key: "esc", Command: CmdFormCancel, Context: ContextForm, Description: "Cancel"},

		// Help
		{Key: "?", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "esc", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "q", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
	}
}

// RegisterDefaults registers all default bindings with the registry
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
