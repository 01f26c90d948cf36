package db

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

func TestInitialize(t *testing.T) {
	dir := t.TempDir()

	db, err := Initialize(dir, DriverPure)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, ".todos", "storage.db")); os.IsNotExist(err) {
		t.Error("storage file not created")
	}
}

func TestOpenRequiresInitialize(t *testing.T) {
	_, err := Open(t.TempDir(), DriverPure)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Open on empty dir = %v, want ErrNotInitialized", err)
	}
}

func TestInitializeRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	if _, err := Initialize(dir, "postgres"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if _, err := os.Stat(filepath.Join(dir, ".todos")); !os.IsNotExist(err) {
		t.Errorf("data dir created for a rejected driver (stat err = %v)", err)
	}
}

func TestGetMissingItem(t *testing.T) {
	db, err := Initialize(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer db.Close()

	value, ok, err := db.GetItem("todos")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if ok || value != "" {
		t.Errorf("GetItem on missing key = (%q, %v), want (\"\", false)", value, ok)
	}
}

func TestSetItemOverwrites(t *testing.T) {
	dir := t.TempDir()
	db, err := Initialize(dir, DriverPure)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if err := db.SetItem("todos", `[]`); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := db.SetItem("todos", `[{"text":"a"}]`); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	db.Close()

	// Value must survive a reopen
	db, err = Open(dir, DriverPure)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	value, ok, err := db.GetItem("todos")
	if err != nil || !ok {
		t.Fatalf("GetItem = (%q, %v, %v)", value, ok, err)
	}
	if value != `[{"text":"a"}]` {
		t.Errorf("value = %q, want overwritten value", value)
	}
}

func TestUpdateItem(t *testing.T) {
	db, err := Initialize(t.TempDir(), DriverPure)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer db.Close()

	// Missing key is reported to fn
	err = db.UpdateItem("todos", func(old string, ok bool) (string, bool, error) {
		if ok || old != "" {
			t.Errorf("fn got (%q, %v) for missing key", old, ok)
		}
		return "a", true, nil
	})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	err = db.UpdateItem("todos", func(old string, ok bool) (string, bool, error) {
		return old + "b", true, nil
	})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	// changed=false and errors leave the value alone
	db.UpdateItem("todos", func(string, bool) (string, bool, error) { return "x", false, nil })
	boom := errors.New("boom")
	if err := db.UpdateItem("todos", func(string, bool) (string, bool, error) { return "y", true, boom }); !errors.Is(err, boom) {
		t.Errorf("UpdateItem error = %v, want boom", err)
	}

	if v, _, _ := db.GetItem("todos"); v != "ab" {
		t.Errorf("value = %q, want ab", v)
	}
}

func TestUpdateItemSerializesHandles(t *testing.T) {
	dir := t.TempDir()
	first, err := Initialize(dir, DriverPure)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	first.Close()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := Open(dir, DriverPure)
			if err != nil {
				errs <- err
				return
			}
			defer h.Close()
			errs <- h.UpdateItem("counter", func(old string, ok bool) (string, bool, error) {
				n, _ := strconv.Atoi(old)
				return strconv.Itoa(n + 1), true, nil
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("worker failed: %v", err)
		}
	}

	h, err := Open(dir, DriverPure)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	if v, _, _ := h.GetItem("counter"); v != strconv.Itoa(workers) {
		t.Errorf("counter = %s after %d concurrent increments", v, workers)
	}
}

func TestIsValidDriver(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{DriverPure, true},
		{DriverCgo, true},
		{"", false},
		{"mysql", false},
	}
	for _, tc := range tests {
		if got := IsValidDriver(tc.name); got != tc.want {
			t.Errorf("IsValidDriver(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
