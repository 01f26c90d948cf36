package keymap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config is the user key binding file, .todos/keymap.json
type Config struct {
	// Bindings maps "context:key" to a command, e.g. {"main:d": "delete-task"}
	Bindings map[string]string `json:"bindings"`
}

// ConfigPath returns the keymap file for a project
func ConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ".todos", "keymap.json")
}

// LoadConfig reads key overrides. A missing file yields an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Bindings: make(map[string]string)}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Bindings == nil {
		cfg.Bindings = make(map[string]string)
	}
	return &cfg, nil
}

// ApplyConfig installs the overrides in r. Entries without a context
// prefix are global.
func ApplyConfig(r *Registry, cfg *Config) {
	for binding, cmd := range cfg.Bindings {
		ctx, key := parseBinding(binding)
		if key == "" {
			continue
		}
		r.SetUserOverride(ctx, key, Command(cmd))
	}
}

func parseBinding(s string) (Context, string) {
	if ctx, key, ok := strings.Cut(s, ":"); ok && ctx != "" {
		return Context(ctx), key
	}
	return ContextGlobal, s
}
