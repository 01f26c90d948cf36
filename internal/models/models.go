package models

import (
	"fmt"
	"strings"
)

// Task is a single to-do item. Tasks carry no identifier; a task is
// addressed by its position in the list.
type Task struct {
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Assignee  string `json:"assignee" yaml:"assignee"`
}

// StatusFilter selects tasks by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// AssigneeAll is the assignee filter sentinel that matches every task
const AssigneeAll = "all"

// StatusFilters returns the status filters in display order
func StatusFilters() []StatusFilter {
	return []StatusFilter{StatusAll, StatusActive, StatusCompleted}
}

// IsValidStatusFilter checks if a status filter is known
func IsValidStatusFilter(s StatusFilter) bool {
	switch s {
	case StatusAll, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// NormalizeStatusFilter maps alternate spellings to the canonical filter.
// Unknown values are returned lowercased so callers can reject them.
func NormalizeStatusFilter(s string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return StatusAll
	case "active", "open", "todo", "pending":
		return StatusActive
	case "completed", "complete", "done", "closed":
		return StatusCompleted
	}
	return StatusFilter(strings.ToLower(strings.TrimSpace(s)))
}

// String implements pflag.Value
func (s *StatusFilter) String() string {
	if *s == "" {
		return string(StatusAll)
	}
	return string(*s)
}

// Set implements pflag.Value
func (s *StatusFilter) Set(v string) error {
	f := NormalizeStatusFilter(v)
	if !IsValidStatusFilter(f) {
		return fmt.Errorf("invalid status filter: %s (valid: all, active, completed)", v)
	}
	*s = f
	return nil
}

// Type implements pflag.Value
func (s *StatusFilter) Type() string {
	return "status"
}

// Filter is the pair of visibility selections applied to the list
type Filter struct {
	Status   StatusFilter `json:"status"`
	Assignee string       `json:"assignee"`
}

// DefaultFilter shows every task
func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Assignee: AssigneeAll}
}

// Config is the project configuration stored in .todos/config.json
type Config struct {
	Driver              string       `json:"driver,omitempty" toml:"driver"`
	StatusDelay         string       `json:"status_delay,omitempty" toml:"status_delay"`
	LogLevel            string       `json:"log_level,omitempty" toml:"log_level"`
	BoardStatusFilter   StatusFilter `json:"board_status_filter,omitempty" toml:"-"`
	BoardAssigneeFilter string       `json:"board_assignee_filter,omitempty" toml:"-"`
}
