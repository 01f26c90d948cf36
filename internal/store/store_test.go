package store

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/marcus/tasklist/internal/db"
	"github.com/marcus/tasklist/internal/models"
)

type failingBackend struct{}

func (failingBackend) GetItem(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingBackend) SetItem(string, string) error         { return errors.New("disk gone") }

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(NewMemory())
	tasks := []models.Task{
		{Text: "Buy milk", Completed: true, Assignee: "Alice"},
		{Text: "Wash car", Completed: false, Assignee: "Bob"},
	}

	if err := s.Save(tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := s.Load(); !reflect.DeepEqual(got, tasks) {
		t.Errorf("Load() = %+v, want %+v", got, tasks)
	}
}

func TestSaveWireFormat(t *testing.T) {
	mem := NewMemory()
	s := New(mem)
	if err := s.Save([]models.Task{{Text: "Buy milk", Assignee: "Alice"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, ok, _ := mem.GetItem(Key)
	if !ok {
		t.Fatal("nothing stored under key")
	}
	want := `[{"text":"Buy milk","completed":false,"assignee":"Alice"}]`
	if raw != want {
		t.Errorf("stored %s, want %s", raw, want)
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	mem := NewMemory()
	if err := New(mem).Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if raw, _, _ := mem.GetItem(Key); raw != "[]" {
		t.Errorf("stored %q, want []", raw)
	}
}

func TestLoadTreatsBadValuesAsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
	}{
		{"missing", "", false},
		{"corrupt", "{not json", true},
		{"null", "null", true},
		{"wrong shape", `{"text":"x"}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mem := NewMemory()
			if tc.set {
				mem.SetItem(Key, tc.value)
			}
			got := New(mem).Load()
			if got == nil || len(got) != 0 {
				t.Errorf("Load() = %#v, want empty non-nil list", got)
			}
		})
	}
}

func TestLegacyFieldsIgnored(t *testing.T) {
	mem := NewMemory()
	mem.SetItem(Key, `[{"text":"a","completed":true,"assignee":"x","priority":3}]`)

	got := New(mem).Load()
	want := []models.Task{{Text: "a", Completed: true, Assignee: "x"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestBackendErrors(t *testing.T) {
	s := New(failingBackend{})
	if err := s.Save([]models.Task{{Text: "a", Assignee: "b"}}); err == nil {
		t.Error("Save should surface backend errors")
	}
	if got := s.Load(); len(got) != 0 {
		t.Errorf("Load() on failing backend = %+v, want empty", got)
	}
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	database, err := db.Initialize(dir, db.DriverPure)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer database.Close()

	s := New(database)
	tasks := []models.Task{{Text: "Buy milk", Assignee: "Alice"}}
	if err := s.Save(tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := New(database).Load(); !reflect.DeepEqual(got, tasks) {
		t.Errorf("Load() = %+v, want %+v", got, tasks)
	}
}

func TestUpdateAppliesToLatestValue(t *testing.T) {
	for _, tc := range []struct {
		name    string
		backend Backend
	}{
		{"memory", NewMemory()},
		{"plain backend", &plainBackend{items: map[string]string{}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.backend)
			if err := s.Save([]models.Task{{Text: "a", Assignee: "A"}}); err != nil {
				t.Fatal(err)
			}

			err := s.Update(func(tasks []models.Task) ([]models.Task, bool, error) {
				return append(tasks, models.Task{Text: "b", Assignee: "B"}), true, nil
			})
			if err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			boom := errors.New("boom")
			err = s.Update(func(tasks []models.Task) ([]models.Task, bool, error) {
				return nil, true, boom
			})
			if !errors.Is(err, boom) {
				t.Errorf("Update error = %v, want boom", err)
			}

			if got := s.Load(); len(got) != 2 || got[1].Text != "b" {
				t.Errorf("Load() = %+v", got)
			}
		})
	}
}

func TestConcurrentUpdatesAllPersist(t *testing.T) {
	dir := t.TempDir()
	first, err := db.Initialize(dir, db.DriverPure)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	first.Close()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := db.Open(dir, db.DriverPure)
			if err != nil {
				errs <- err
				return
			}
			defer h.Close()
			errs <- New(h).Update(func(tasks []models.Task) ([]models.Task, bool, error) {
				return append(tasks, models.Task{Text: fmt.Sprintf("task %d", i), Assignee: "A"}), true, nil
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("worker failed: %v", err)
		}
	}

	h, err := db.Open(dir, db.DriverPure)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	if got := New(h).Load(); len(got) != workers {
		t.Errorf("%d concurrent adds persisted %d tasks", workers, len(got))
	}
}

// plainBackend has no UpdateItem, exercising the unlocked fallback
type plainBackend struct {
	items map[string]string
}

func (b *plainBackend) GetItem(key string) (string, bool, error) {
	v, ok := b.items[key]
	return v, ok, nil
}

func (b *plainBackend) SetItem(key, value string) error {
	b.items[key] = value
	return nil
}
