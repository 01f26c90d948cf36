package todo

import (
	"errors"
	"reflect"
	"testing"

	"github.com/marcus/tasklist/internal/models"
	"github.com/marcus/tasklist/internal/store"
)

// countingStore records every save
type countingStore struct {
	*store.Store
	saves int
}

func (c *countingStore) Save(tasks []models.Task) error {
	c.saves++
	return c.Store.Save(tasks)
}

func newTestList(t *testing.T) (*List, *countingStore) {
	t.Helper()
	cs := &countingStore{Store: store.New(store.NewMemory())}
	return Open(cs), cs
}

func mustAdd(t *testing.T, l *List, text, assignee string) {
	t.Helper()
	msg, err := l.Add(text, assignee)
	if err != nil {
		t.Fatalf("Add(%q, %q) failed: %v", text, assignee, err)
	}
	if msg != MsgAdded {
		t.Fatalf("Add(%q, %q) message = %q, want %q", text, assignee, msg, MsgAdded)
	}
}

func TestAddThenReload(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "  Buy milk ", " Alice")

	reloaded := Open(cs)
	want := []models.Task{{Text: "Buy milk", Assignee: "Alice", Completed: false}}
	if got := reloaded.Tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded tasks = %+v, want %+v", got, want)
	}
}

func TestAddBlankIsNoop(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		assignee string
	}{
		{"empty text", "", "Alice"},
		{"blank text", "   ", "Alice"},
		{"empty assignee", "Buy milk", ""},
		{"blank assignee", "Buy milk", "\t"},
		{"both empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, cs := newTestList(t)
			msg, err := l.Add(tc.text, tc.assignee)
			if err != nil {
				t.Fatalf("Add returned error: %v", err)
			}
			if msg != "" {
				t.Errorf("message = %q, want empty", msg)
			}
			if l.Len() != 0 {
				t.Errorf("Len() = %d, want 0", l.Len())
			}
			if cs.saves != 0 {
				t.Errorf("saves = %d, want 0", cs.saves)
			}
		})
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "Buy milk", "Alice")
	before := cs.saves

	msg, err := l.Toggle(0)
	if err != nil || msg != MsgUpdated {
		t.Fatalf("Toggle = (%q, %v)", msg, err)
	}
	if cs.saves != before+1 {
		t.Errorf("saves after first toggle = %d, want %d", cs.saves, before+1)
	}
	if task, _ := l.Task(0); !task.Completed {
		t.Error("task should be completed after one toggle")
	}

	l.Toggle(0)
	if cs.saves != before+2 {
		t.Errorf("saves after second toggle = %d, want %d", cs.saves, before+2)
	}
	if task, _ := l.Task(0); task.Completed {
		t.Error("task should be incomplete after two toggles")
	}
}

func TestSetCompletedUnchangedSkipsSave(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "Buy milk", "Alice")
	before := cs.saves

	msg, err := l.SetCompleted(0, false)
	if err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if msg != "" || cs.saves != before {
		t.Errorf("SetCompleted to current value = (%q, saves %d), want no-op", msg, cs.saves-before)
	}

	msg, _ = l.SetCompleted(0, true)
	if msg != MsgUpdated {
		t.Errorf("message = %q, want %q", msg, MsgUpdated)
	}
}

func TestEdit(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "Buy milk", "Alice")

	msg, err := l.Edit(0, " Buy oat milk ")
	if err != nil || msg != MsgEdited {
		t.Fatalf("Edit = (%q, %v)", msg, err)
	}
	got := Open(cs).Tasks()[0]
	if got.Text != "Buy oat milk" || got.Assignee != "Alice" {
		t.Errorf("persisted task = %+v", got)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "a", "Alice")
	mustAdd(t, l, "b", "Bob")
	mustAdd(t, l, "c", "Alice")

	msg, err := l.Delete(1)
	if err != nil || msg != MsgDeleted {
		t.Fatalf("Delete = (%q, %v)", msg, err)
	}

	persisted := cs.Load()
	if len(persisted) != 2 {
		t.Fatalf("persisted length = %d, want 2", len(persisted))
	}
	if persisted[0].Text != "a" || persisted[1].Text != "c" {
		t.Errorf("persisted = %+v, want a then c", persisted)
	}
}

func TestOutOfRange(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "a", "Alice")
	before := cs.saves

	for _, i := range []int{-1, 1, 5} {
		if _, err := l.Toggle(i); !errors.Is(err, ErrNoSuchTask) {
			t.Errorf("Toggle(%d) err = %v, want ErrNoSuchTask", i, err)
		}
		if _, err := l.Edit(i, "x"); !errors.Is(err, ErrNoSuchTask) {
			t.Errorf("Edit(%d) err = %v, want ErrNoSuchTask", i, err)
		}
		if _, err := l.Delete(i); !errors.Is(err, ErrNoSuchTask) {
			t.Errorf("Delete(%d) err = %v, want ErrNoSuchTask", i, err)
		}
	}
	if cs.saves != before {
		t.Errorf("out-of-range ops saved %d times", cs.saves-before)
	}
}

func TestClearCompleted(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "a", "Alice")
	mustAdd(t, l, "b", "Bob")
	mustAdd(t, l, "c", "Carol")
	mustAdd(t, l, "d", "Dan")
	l.Toggle(0)
	l.Toggle(2)

	msg, err := l.ClearCompleted()
	if err != nil || msg != MsgCleared {
		t.Fatalf("ClearCompleted = (%q, %v)", msg, err)
	}

	want := []models.Task{
		{Text: "b", Assignee: "Bob"},
		{Text: "d", Assignee: "Dan"},
	}
	if got := cs.Load(); !reflect.DeepEqual(got, want) {
		t.Errorf("persisted = %+v, want %+v", got, want)
	}
}

func TestClearCompletedWithNothingCompletedStillSaves(t *testing.T) {
	l, cs := newTestList(t)
	mustAdd(t, l, "a", "Alice")
	before := cs.saves

	msg, _ := l.ClearCompleted()
	if msg != MsgCleared || cs.saves != before+1 {
		t.Errorf("ClearCompleted = %q with %d saves", msg, cs.saves-before)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestAssigneesDerived(t *testing.T) {
	l, _ := newTestList(t)
	mustAdd(t, l, "a", "Alice")
	mustAdd(t, l, "b", "Bob")
	mustAdd(t, l, "c", "Alice")

	if got, want := l.Assignees(), []string{"Alice", "Bob"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Assignees() = %v, want %v", got, want)
	}

	l.Delete(1)
	if got, want := l.Assignees(), []string{"Alice"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Assignees() after deleting Bob's task = %v, want %v", got, want)
	}
	if got, want := l.AssigneeOptions(), []string{models.AssigneeAll, "Alice"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AssigneeOptions() = %v, want %v", got, want)
	}
}

func TestSaveErrorSurfaces(t *testing.T) {
	l := New(nil, failingSaver{})
	msg, err := l.Add("a", "b")
	if err == nil {
		t.Fatal("expected save error")
	}
	if msg != "" {
		t.Errorf("message on failure = %q, want empty", msg)
	}
}

func TestFailedSaveLeavesListUnchanged(t *testing.T) {
	start := []models.Task{{Text: "keep", Assignee: "A", Completed: true}}
	l := New(start, failingSaver{})
	l.SetAssigneeFilter("A")

	ops := map[string]func() (string, error){
		"add":    func() (string, error) { return l.Add("ghost", "B") },
		"toggle": func() (string, error) { return l.Toggle(0) },
		"edit":   func() (string, error) { return l.Edit(0, "changed") },
		"delete": func() (string, error) { return l.Delete(0) },
		"clear":  func() (string, error) { return l.ClearCompleted() },
	}
	for name, op := range ops {
		if _, err := op(); err == nil {
			t.Errorf("%s: expected save error", name)
		}
		if l.Len() != 1 || !reflect.DeepEqual(l.Tasks(), start) {
			t.Errorf("%s: list after failed save = %+v, want %+v", name, l.Tasks(), start)
		}
		if l.Filter().Assignee != "A" {
			t.Errorf("%s: assignee filter reset by a failed save", name)
		}
	}
}

func TestApplyUsesLatestStoredList(t *testing.T) {
	st := store.New(store.NewMemory())
	stale := Open(st)

	// Another writer adds after stale was loaded
	if err := st.Save([]models.Task{{Text: "theirs", Assignee: "A"}}); err != nil {
		t.Fatal(err)
	}

	msg, l, err := Apply(st, func(l *List) (string, error) {
		return l.Add("mine", "B")
	})
	if err != nil || msg != MsgAdded {
		t.Fatalf("Apply = (%q, %v)", msg, err)
	}
	want := []models.Task{{Text: "theirs", Assignee: "A"}, {Text: "mine", Assignee: "B"}}
	if got := st.Load(); !reflect.DeepEqual(got, want) {
		t.Errorf("stored %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(l.Tasks(), want) {
		t.Errorf("returned list %+v, want %+v", l.Tasks(), want)
	}
	if stale.Len() != 0 {
		t.Error("Apply must not touch other lists")
	}
}

func TestApplyErrorAndNoop(t *testing.T) {
	st := store.New(store.NewMemory())
	if err := st.Save([]models.Task{{Text: "a", Assignee: "A"}}); err != nil {
		t.Fatal(err)
	}

	_, l, err := Apply(st, func(l *List) (string, error) {
		return l.Toggle(5)
	})
	if !errors.Is(err, ErrNoSuchTask) || l != nil {
		t.Errorf("Apply = (%v, %v), want ErrNoSuchTask and no list", l, err)
	}

	msg, l, err := Apply(st, func(l *List) (string, error) {
		return l.Add(" ", "A")
	})
	if err != nil || msg != "" || l.Len() != 1 {
		t.Errorf("blank add through Apply = (%q, %v, %v)", msg, l, err)
	}
}

type failingSaver struct{}

func (failingSaver) Save([]models.Task) error { return errors.New("read-only") }

func TestCounts(t *testing.T) {
	l, _ := newTestList(t)
	mustAdd(t, l, "a", "Alice")
	mustAdd(t, l, "b", "Bob")
	mustAdd(t, l, "c", "Carol")
	l.Toggle(1)

	active, completed := l.Counts()
	if active != 2 || completed != 1 {
		t.Errorf("Counts() = (%d, %d), want (2, 1)", active, completed)
	}
}
