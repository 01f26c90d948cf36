// Package config reads and writes tl configuration: user defaults from a
// TOML file and per-project overrides in .todos/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/marcus/tasklist/internal/db"
	"github.com/marcus/tasklist/internal/models"
	"github.com/marcus/tasklist/internal/status"
)

const configFile = ".todos/config.json"
const lockFile = ".todos/config.json.lock"

// UserConfigEnv overrides the user config file location
const UserConfigEnv = "TL_CONFIG"

// Settable keys for `tl config`
const (
	KeyDriver      = "driver"
	KeyStatusDelay = "status_delay"
	KeyLogLevel    = "log_level"
)

// Defaults returns the built-in configuration
func Defaults() *models.Config {
	return &models.Config{
		Driver:      db.DriverPure,
		StatusDelay: status.DefaultDelay.String(),
		LogLevel:    "info",
	}
}

// Load reads the project config from disk
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// UserConfigPath returns the user defaults file, or "" when no config
// directory can be determined.
func UserConfigPath() string {
	if p := os.Getenv(UserConfigEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tasklist", "config.toml")
}

// LoadUser reads the user defaults file. A missing file is not an error.
func LoadUser(path string) (*models.Config, error) {
	var cfg models.Config
	if path == "" {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve layers built-in defaults, user defaults and the project config
func Resolve(baseDir string) (*models.Config, error) {
	cfg := Defaults()

	user, err := LoadUser(UserConfigPath())
	if err != nil {
		return nil, err
	}
	merge(cfg, user)

	project, err := Load(baseDir)
	if err != nil {
		return nil, err
	}
	merge(cfg, project)

	return cfg, nil
}

// merge copies every non-empty field of src onto dst
func merge(dst, src *models.Config) {
	if src.Driver != "" {
		dst.Driver = src.Driver
	}
	if src.StatusDelay != "" {
		dst.StatusDelay = src.StatusDelay
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.BoardStatusFilter != "" {
		dst.BoardStatusFilter = src.BoardStatusFilter
	}
	if src.BoardAssigneeFilter != "" {
		dst.BoardAssigneeFilter = src.BoardAssigneeFilter
	}
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// update applies fn to the project config under the config lock
func update(baseDir string, fn func(cfg *models.Config) error) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// Keys returns the keys accepted by Get and Set
func Keys() []string {
	keys := []string{KeyDriver, KeyStatusDelay, KeyLogLevel}
	sort.Strings(keys)
	return keys
}

// Get returns the effective value of key
func Get(baseDir, key string) (string, error) {
	cfg, err := Resolve(baseDir)
	if err != nil {
		return "", err
	}
	switch key {
	case KeyDriver:
		return cfg.Driver, nil
	case KeyStatusDelay:
		return cfg.StatusDelay, nil
	case KeyLogLevel:
		return cfg.LogLevel, nil
	}
	return "", fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
}

// Set validates value and stores it in the project config
func Set(baseDir, key, value string) error {
	switch key {
	case KeyDriver:
		if !db.IsValidDriver(value) {
			return fmt.Errorf("invalid driver: %s (valid: %s, %s)", value, db.DriverPure, db.DriverCgo)
		}
	case KeyStatusDelay:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid status_delay: %s (want a positive duration like 3s)", value)
		}
	case KeyLogLevel:
		if !isLogLevel(value) {
			return fmt.Errorf("invalid log_level: %s (valid: debug, info, warn, error)", value)
		}
	default:
		return fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
	}

	return update(baseDir, func(cfg *models.Config) error {
		switch key {
		case KeyDriver:
			cfg.Driver = value
		case KeyStatusDelay:
			cfg.StatusDelay = value
		case KeyLogLevel:
			cfg.LogLevel = value
		}
		return nil
	})
}

func isLogLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// StatusDelay returns the configured status line delay, falling back to
// the default for unset or malformed values.
func StatusDelay(cfg *models.Config) time.Duration {
	if cfg == nil || cfg.StatusDelay == "" {
		return status.DefaultDelay
	}
	d, err := time.ParseDuration(cfg.StatusDelay)
	if err != nil || d <= 0 {
		return status.DefaultDelay
	}
	return d
}

// GetBoardFilter returns the filter the board last used
func GetBoardFilter(baseDir string) (models.Filter, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return models.DefaultFilter(), err
	}
	f := models.Filter{
		Status:   cfg.BoardStatusFilter,
		Assignee: cfg.BoardAssigneeFilter,
	}
	if !models.IsValidStatusFilter(f.Status) {
		f.Status = models.StatusAll
	}
	if f.Assignee == "" {
		f.Assignee = models.AssigneeAll
	}
	return f, nil
}

// SetBoardFilter remembers the board filter for the next session
func SetBoardFilter(baseDir string, f models.Filter) error {
	return update(baseDir, func(cfg *models.Config) error {
		cfg.BoardStatusFilter = f.Status
		cfg.BoardAssigneeFilter = f.Assignee
		return nil
	})
}
