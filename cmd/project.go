package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcus/tasklist/internal/config"
	"github.com/marcus/tasklist/internal/db"
	"github.com/marcus/tasklist/internal/output"
	"github.com/marcus/tasklist/internal/store"
	"github.com/marcus/tasklist/internal/todo"
)

// project is an opened task list plus the resources behind it
type project struct {
	List  *todo.List
	store *store.Store
	db    *db.DB
}

func (p *project) Close() error {
	return p.db.Close()
}

// openProject loads the task list of the current project
func openProject() (*project, error) {
	dir := getBaseDir()

	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	database, err := db.Open(dir, cfg.Driver)
	if err != nil {
		return nil, err
	}

	st := store.New(database)
	return &project{
		List:  todo.Open(st),
		store: st,
		db:    database,
	}, nil
}

// apply runs fn against the stored list while holding the write lock, so
// concurrent tl processes never lose each other's changes. p.List is
// replaced with the saved result.
func (p *project) apply(fn func(l *todo.List) (string, error)) (string, error) {
	msg, list, err := todo.Apply(p.store, fn)
	if list != nil {
		p.List = list
	}
	return msg, err
}

// parsePosition converts a 1-based task number to a list index
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(arg, "#")))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number: %q", arg)
	}
	return n - 1, nil
}

// reportMutation prints the outcome of a list operation
func (p *project) reportMutation(msg string, err error) error {
	if err != nil {
		if errors.Is(err, todo.ErrNoSuchTask) {
			output.Error("%v (list has %d tasks)", err, p.List.Len())
			return err
		}
		output.Error("%v", err)
		return err
	}
	if msg != "" {
		output.Success("%s", msg)
	}
	return nil
}
