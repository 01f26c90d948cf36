// Package store persists the task list as a JSON array under a single key
// of a key/value persistence area.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/marcus/tasklist/internal/models"
)

// Key is the fixed storage key holding the task list
const Key = "todos"

// Backend is a string key/value persistence area
type Backend interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
}

// Updater is a Backend that can read and write a key atomically
type Updater interface {
	UpdateItem(key string, fn func(value string, ok bool) (string, bool, error)) error
}

// Store reads and writes the task list
type Store struct {
	backend Backend
}

// New returns a store over backend
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Save overwrites the persisted list with tasks
func (s *Store) Save(tasks []models.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return err
	}
	if err := s.backend.SetItem(Key, data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	slog.Debug("tasks saved", "count", len(tasks))
	return nil
}

// Load returns the persisted list. A missing, unreadable or corrupt value
// yields an empty list.
func (s *Store) Load() []models.Task {
	raw, ok, err := s.backend.GetItem(Key)
	if err != nil {
		slog.Debug("tasks unreadable, starting empty", "err", err)
		return []models.Task{}
	}
	return decode(raw, ok)
}

// Update loads the list, passes it to fn and saves what fn returns. With an
// Updater backend the whole cycle holds the backend's write lock. fn
// returning changed=false skips the write.
func (s *Store) Update(fn func(tasks []models.Task) ([]models.Task, bool, error)) error {
	u, ok := s.backend.(Updater)
	if !ok {
		next, changed, err := fn(s.Load())
		if err != nil || !changed {
			return err
		}
		return s.Save(next)
	}

	var fnErr error
	err := u.UpdateItem(Key, func(raw string, ok bool) (string, bool, error) {
		next, changed, err := fn(decode(raw, ok))
		if err != nil || !changed {
			fnErr = err
			return "", false, err
		}
		data, err := encode(next)
		return data, true, err
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("update tasks: %w", err)
	}
	return nil
}

func encode(tasks []models.Task) (string, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

func decode(raw string, ok bool) []models.Task {
	if !ok {
		return []models.Task{}
	}
	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		slog.Debug("stored tasks corrupt, starting empty", "err", err)
		return []models.Task{}
	}
	if tasks == nil {
		// JSON null
		return []models.Task{}
	}
	return tasks
}

// Memory is an in-process Backend
type Memory struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemory returns an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// GetItem implements Backend
func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements Backend
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// UpdateItem implements Updater
func (m *Memory) UpdateItem(key string, fn func(value string, ok bool) (string, bool, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.items[key]
	value, changed, err := fn(old, ok)
	if err != nil || !changed {
		return err
	}
	m.items[key] = value
	return nil
}
