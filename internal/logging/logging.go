// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LogFile is where tl writes logs, relative to the project base dir
const LogFile = ".todos/tasklist.log"

// ParseLevel maps a level name to a slog.Level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w. format is "text" or "json".
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Setup installs the default logger writing to the project log file. When
// the data dir does not exist yet, logs are discarded. The returned closer
// must be called on exit.
func Setup(baseDir, level, format string) (io.Closer, error) {
	dir := filepath.Join(baseDir, filepath.Dir(LogFile))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.SetDefault(New(io.Discard, level, format))
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(filepath.Join(baseDir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(New(f, level, format))
	return f, nil
}
