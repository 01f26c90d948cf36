// Package todo holds the ordered task list and the operations that mutate
// and filter it. Every mutation persists the whole list through a Saver.
package todo

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/marcus/tasklist/internal/models"
)

// Status messages reported after each mutation
const (
	MsgAdded   = "Task Added"
	MsgUpdated = "Task Updated"
	MsgEdited  = "Task Edited"
	MsgDeleted = "Task Deleted"
	MsgCleared = "Completed Tasks Cleared"
)

// ErrNoSuchTask is returned for an out-of-range position
var ErrNoSuchTask = errors.New("no such task")

// Saver persists the full task list
type Saver interface {
	Save(tasks []models.Task) error
}

// Loader reads the persisted task list
type Loader interface {
	Load() []models.Task
}

// Store is a Saver that can also load
type Store interface {
	Saver
	Loader
}

// List is the in-memory ordered task list. Positions are 0-based here;
// the CLI converts from 1-based.
type List struct {
	tasks  []models.Task
	filter models.Filter
	saver  Saver
}

// New builds a list over tasks without loading anything
func New(tasks []models.Task, saver Saver) *List {
	return &List{
		tasks:  slices.Clone(tasks),
		filter: models.DefaultFilter(),
		saver:  saver,
	}
}

// Open loads the persisted list from st
func Open(st Store) *List {
	return New(st.Load(), st)
}

// Len returns the number of tasks
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in order
func (l *List) Tasks() []models.Task {
	return slices.Clone(l.tasks)
}

// Task returns the task at position i
func (l *List) Task(i int) (models.Task, error) {
	if err := l.check(i); err != nil {
		return models.Task{}, err
	}
	return l.tasks[i], nil
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return fmt.Errorf("%w: %d", ErrNoSuchTask, i+1)
	}
	return nil
}

// commit saves next and adopts it only once the save succeeded, so a
// failed save leaves the list as it was.
func (l *List) commit(next []models.Task, msg string) (string, error) {
	if err := l.saver.Save(next); err != nil {
		slog.Error("save failed", "op", msg, "err", err)
		return "", err
	}
	l.tasks = next
	return msg, nil
}

// Add appends a new incomplete task. Blank text or assignee is a silent
// no-op: the returned message is empty and nothing is saved.
func (l *List) Add(text, assignee string) (string, error) {
	text = strings.TrimSpace(text)
	assignee = strings.TrimSpace(assignee)
	if text == "" || assignee == "" {
		return "", nil
	}

	next := append(slices.Clone(l.tasks), models.Task{Text: text, Assignee: assignee})
	return l.commit(next, MsgAdded)
}

// Toggle flips the completion flag of task i
func (l *List) Toggle(i int) (string, error) {
	if err := l.check(i); err != nil {
		return "", err
	}
	next := slices.Clone(l.tasks)
	next[i].Completed = !next[i].Completed
	return l.commit(next, MsgUpdated)
}

// SetCompleted sets the completion flag of task i. Setting the value the
// task already has saves nothing and returns an empty message.
func (l *List) SetCompleted(i int, completed bool) (string, error) {
	if err := l.check(i); err != nil {
		return "", err
	}
	if l.tasks[i].Completed == completed {
		return "", nil
	}
	return l.Toggle(i)
}

// Edit replaces the text of task i with the trimmed text
func (l *List) Edit(i int, text string) (string, error) {
	if err := l.check(i); err != nil {
		return "", err
	}
	next := slices.Clone(l.tasks)
	next[i].Text = strings.TrimSpace(text)
	return l.commit(next, MsgEdited)
}

// Delete removes task i
func (l *List) Delete(i int) (string, error) {
	if err := l.check(i); err != nil {
		return "", err
	}
	next := slices.Delete(slices.Clone(l.tasks), i, i+1)
	msg, err := l.commit(next, MsgDeleted)
	if err == nil {
		l.dropStaleAssignee()
	}
	return msg, err
}

// ClearCompleted removes every completed task, keeping the order of the rest
func (l *List) ClearCompleted() (string, error) {
	next := slices.DeleteFunc(slices.Clone(l.tasks), func(t models.Task) bool {
		return t.Completed
	})
	msg, err := l.commit(next, MsgCleared)
	if err == nil {
		l.dropStaleAssignee()
	}
	return msg, err
}

// Assignees returns the distinct assignee names in order of first
// appearance. It is derived from the live list on every call.
func (l *List) Assignees() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range l.tasks {
		if !seen[t.Assignee] {
			seen[t.Assignee] = true
			names = append(names, t.Assignee)
		}
	}
	return names
}

// Counts returns the number of active and completed tasks
func (l *List) Counts() (active, completed int) {
	for _, t := range l.tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

// Updater loads and saves the list as one locked step
type Updater interface {
	Update(fn func(tasks []models.Task) ([]models.Task, bool, error)) error
}

// pending records what a List would save without writing it
type pending struct {
	tasks []models.Task
	saved bool
}

func (p *pending) Save(tasks []models.Task) error {
	p.tasks = slices.Clone(tasks)
	p.saved = true
	return nil
}

// Apply runs fn against the freshly loaded list inside u.Update, so no
// other writer can slip in between the load and the save. On success the
// returned list holds the persisted result; on failure it is nil.
func Apply(u Updater, fn func(l *List) (string, error)) (string, *List, error) {
	var msg string
	var list *List
	err := u.Update(func(tasks []models.Task) ([]models.Task, bool, error) {
		p := &pending{}
		list = New(tasks, p)
		m, err := fn(list)
		if err != nil {
			return nil, false, err
		}
		msg = m
		return p.tasks, p.saved, nil
	})
	if err != nil {
		return "", nil, err
	}
	if s, ok := u.(Saver); ok {
		list.saver = s
	}
	return msg, list, nil
}
