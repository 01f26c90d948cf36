// Package db provides the local key/value persistence area backed by SQLite.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	dataDir = ".todos"
	dbFile  = ".todos/storage.db"
)

// Driver names as registered with database/sql
const (
	DriverPure = "sqlite"  // modernc.org/sqlite, no cgo
	DriverCgo  = "sqlite3" // github.com/mattn/go-sqlite3
)

// ErrNotInitialized is returned by Open when the storage file is missing
var ErrNotInitialized = errors.New("storage not found: run 'tl init' first")

// DB wraps the database connection
type DB struct {
	conn    *sql.DB
	baseDir string
}

// IsValidDriver reports whether name is a supported SQLite driver
func IsValidDriver(name string) bool {
	return name == DriverPure || name == DriverCgo
}

// Path returns the storage file path for a base directory
func Path(baseDir string) string {
	return filepath.Join(baseDir, dbFile)
}

// Open opens an existing storage database
func Open(baseDir, driver string) (*DB, error) {
	dbPath := Path(baseDir)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, ErrNotInitialized
	}

	return open(baseDir, driver)
}

// Initialize creates the storage database if needed and opens it
func Initialize(baseDir, driver string) (*DB, error) {
	if driver != "" && !IsValidDriver(driver) {
		return nil, fmt.Errorf("unknown sqlite driver %q (valid: %s, %s)", driver, DriverPure, DriverCgo)
	}
	if err := os.MkdirAll(filepath.Join(baseDir, dataDir), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return open(baseDir, driver)
}

func open(baseDir, driver string) (*DB, error) {
	if driver == "" {
		driver = DriverPure
	}
	if !IsValidDriver(driver) {
		return nil, fmt.Errorf("unknown sqlite driver %q (valid: %s, %s)", driver, DriverPure, DriverCgo)
	}

	conn, err := sql.Open(driver, Path(baseDir))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Matches lock timeout
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	slog.Debug("storage opened", "path", Path(baseDir), "driver", driver)

	return &DB{conn: conn, baseDir: baseDir}, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// withWriteLock executes fn while holding an exclusive write lock.
// This prevents concurrent writes from multiple processes.
func (db *DB) withWriteLock(fn func() error) error {
	locker := newWriteLocker(db.baseDir)
	if err := locker.acquire(defaultTimeout); err != nil {
		return err
	}
	defer locker.release()
	return fn()
}

// GetItem returns the value stored under key. The bool is false when the
// key has never been set.
func (db *DB) GetItem(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM storage WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value
func (db *DB) SetItem(key, value string) error {
	return db.withWriteLock(func() error {
		return db.setItem(key, value)
	})
}

// UpdateItem reads key, passes the value to fn and stores what fn returns,
// all under the write lock so no other process can write in between. When
// fn reports changed=false nothing is written.
func (db *DB) UpdateItem(key string, fn func(value string, ok bool) (string, bool, error)) error {
	return db.withWriteLock(func() error {
		old, ok, err := db.GetItem(key)
		if err != nil {
			return err
		}
		value, changed, err := fn(old, ok)
		if err != nil || !changed {
			return err
		}
		return db.setItem(key, value)
	})
}

func (db *DB) setItem(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
