// Package keymap maps keys to board commands per UI context, with user
// overrides loaded from .todos/keymap.json.
package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal Context = "global"
	ContextMain   Context = "main"
	ContextEdit   Context = "edit" // inline edit of a task label
	ContextForm   Context = "form" // new task form
	ContextHelp   Context = "help"
)

// Command represents a named command that can be triggered by key bindings
type Command string

const (
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	CmdCursorDown   Command = "cursor-down"
	CmdCursorUp     Command = "cursor-up"
	CmdCursorTop    Command = "cursor-top"
	CmdCursorBottom Command = "cursor-bottom"

	CmdNewTask        Command = "new-task"
	CmdToggleComplete Command = "toggle-complete"
	CmdEditTask       Command = "edit-task"
	CmdDeleteTask     Command = "delete-task"
	CmdClearCompleted Command = "clear-completed"

	CmdFilterAll       Command = "filter-all"
	CmdFilterActive    Command = "filter-active"
	CmdFilterCompleted Command = "filter-completed"
	CmdCycleStatus     Command = "cycle-status-filter"
	CmdCycleAssignee   Command = "cycle-assignee-filter"
	CmdResetFilters    Command = "reset-filters"

	CmdEditCommit Command = "edit-commit"
	CmdEditCancel Command = "edit-cancel"

	CmdFormCancel Command = "form-cancel"

	CmdClose Command = "close"
)

// Binding maps a key or key sequence to a command in a specific context
type Binding struct {
	Key         string // e.g. "space", "ctrl+c", "g g"
	Command     Command
	Context     Context
	Description string
}

// Registry manages key bindings and command dispatch
type Registry struct {
	bindings      map[Context][]Binding
	userOverrides map[string]Command // "context:key" -> command
	pendingKey    string
	pendingTime   time.Time
	mu            sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context][]Binding),
		userOverrides: make(map[string]Command),
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds multiple key bindings
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetUserOverride binds key to cmd in context, taking precedence over defaults
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[string(context)+":"+key] = cmd
}

// Lookup finds the command for key in the active context.
// Order: user overrides -> context bindings -> global bindings.
func (r *Registry) Lookup(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyStr := KeyToString(key)

	if r.pendingKey != "" {
		pending := r.pendingKey
		r.pendingKey = ""
		if time.Since(r.pendingTime) < sequenceTimeout {
			if cmd, found := r.findCommand(pending+" "+keyStr, activeContext); found {
				return cmd, true
			}
		}
	}

	if r.isSequenceStart(keyStr, activeContext) {
		r.pendingKey = keyStr
		r.pendingTime = time.Now()
		return "", false
	}

	return r.findCommand(keyStr, activeContext)
}

func (r *Registry) findCommand(key string, activeContext Context) (Command, bool) {
	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, ok := r.userOverrides[string(activeContext)+":"+key]; ok {
			return cmd, true
		}
	}
	if cmd, ok := r.userOverrides[string(ContextGlobal)+":"+key]; ok {
		return cmd, true
	}

	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, found := r.findInContext(key, activeContext); found {
			return cmd, true
		}
	}

	return r.findInContext(key, ContextGlobal)
}

func (r *Registry) findInContext(key string, context Context) (Command, bool) {
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command, true
		}
	}
	return "", false
}

// isSequenceStart reports whether key prefixes a multi-key binding
func (r *Registry) isSequenceStart(key string, activeContext Context) bool {
	prefix := key + " "

	contexts := []Context{ContextGlobal}
	if activeContext != "" && activeContext != ContextGlobal {
		contexts = append(contexts, activeContext)
	}
	for _, ctx := range contexts {
		for _, b := range r.bindings[ctx] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
	}

	for k := range r.userOverrides {
		if _, bound, ok := strings.Cut(k, ":"); ok && strings.HasPrefix(bound, prefix) {
			return true
		}
	}
	return false
}

// ResetPending clears any pending key sequence
func (r *Registry) ResetPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingKey = ""
}

// PendingKey returns the pending sequence prefix, for the footer
func (r *Registry) PendingKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pendingKey != "" && time.Since(r.pendingTime) < sequenceTimeout {
		return r.pendingKey
	}
	return ""
}

// BindingsForContext returns the bindings of context followed by global ones
func (r *Registry) BindingsForContext(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Binding
	result = append(result, r.bindings[context]...)
	if context != ContextGlobal {
		result = append(result, r.bindings[ContextGlobal]...)
	}
	return result
}

// KeyToString converts a tea.KeyMsg to the string form used in bindings
func KeyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if len(key.Runes) == 1 && key.Runes[0] == ' ' {
			return "space"
		}
		return string(key.Runes)
	}
	return key.String()
}
