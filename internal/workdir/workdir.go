// Package workdir resolves the directory holding a project's .todos data,
// supporting redirection via .tl-root files and git worktrees.
package workdir

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/tasklist/internal/git"
)

const (
	dataDir    = ".todos"
	tlRootFile = ".tl-root"
)

// Normalize makes dir absolute and strips a trailing .todos element
func Normalize(dir string) string {
	dir = filepath.Clean(dir)
	if filepath.Base(dir) == dataDir {
		dir = filepath.Dir(dir)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

// ResolveBaseDir finds the project for dir. In order: a .tl-root file in
// dir or an ancestor, the nearest ancestor holding .todos/, the main
// worktree of a linked git worktree when that holds .todos/ or .tl-root.
// With no marker anywhere, dir itself is returned.
func ResolveBaseDir(dir string) string {
	if found, ok := findMarker(dir); ok {
		return found
	}

	if main, err := git.MainWorktree(dir); err == nil && main != "" {
		if found, ok := checkDir(main); ok {
			return found
		}
	}

	return dir
}

// findMarker walks up from dir looking for .tl-root or .todos/
func findMarker(dir string) (string, bool) {
	for d := dir; ; {
		if found, ok := checkDir(d); ok {
			return found, true
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", false
		}
		d = parent
	}
}

func checkDir(d string) (string, bool) {
	if target := readRootFile(d); target != "" {
		return target, true
	}
	if info, err := os.Stat(filepath.Join(d, dataDir)); err == nil && info.IsDir() {
		return d, true
	}
	return "", false
}

// readRootFile returns the path stored in d/.tl-root, or ""
func readRootFile(d string) string {
	content, err := os.ReadFile(filepath.Join(d, tlRootFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
