package todo

import (
	"slices"

	"github.com/marcus/tasklist/internal/models"
)

// StatusMatches reports whether t passes the status filter
func StatusMatches(s models.StatusFilter, t models.Task) bool {
	switch s {
	case models.StatusActive:
		return !t.Completed
	case models.StatusCompleted:
		return t.Completed
	}
	return true
}

// NameMatches reports whether t passes the assignee filter
func NameMatches(name string, t models.Task) bool {
	return name == "" || name == models.AssigneeAll || t.Assignee == name
}

// Visible applies both filters together
func Visible(f models.Filter, t models.Task) bool {
	return StatusMatches(f.Status, t) && NameMatches(f.Assignee, t)
}

// Filter returns the current filter selections
func (l *List) Filter() models.Filter {
	return l.filter
}

// SetFilter replaces both selections
func (l *List) SetFilter(f models.Filter) {
	if !models.IsValidStatusFilter(f.Status) {
		f.Status = models.StatusAll
	}
	if f.Assignee == "" {
		f.Assignee = models.AssigneeAll
	}
	l.filter = f
}

// SetStatusFilter changes the status selection, keeping the assignee one
func (l *List) SetStatusFilter(s models.StatusFilter) {
	f := l.filter
	f.Status = s
	l.SetFilter(f)
}

// SetAssigneeFilter changes the assignee selection, keeping the status one
func (l *List) SetAssigneeFilter(name string) {
	f := l.filter
	f.Assignee = name
	l.SetFilter(f)
}

// VisibleIndexes returns the positions of the tasks passing both filters
func (l *List) VisibleIndexes() []int {
	var idx []int
	for i, t := range l.tasks {
		if Visible(l.filter, t) {
			idx = append(idx, i)
		}
	}
	return idx
}

// AssigneeOptions returns the selectable assignee filter values, the
// sentinel first.
func (l *List) AssigneeOptions() []string {
	return append([]string{models.AssigneeAll}, l.Assignees()...)
}

// dropStaleAssignee resets the assignee selection once no task names it
func (l *List) dropStaleAssignee() {
	if l.filter.Assignee == models.AssigneeAll {
		return
	}
	if !slices.Contains(l.Assignees(), l.filter.Assignee) {
		l.filter.Assignee = models.AssigneeAll
	}
}
