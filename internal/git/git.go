// Package git answers the few repository questions tl needs: whether a
// directory is in a repo, and where the repo's main worktree lives.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsRepo checks if dir is inside a git repository
func IsRepo(dir string) bool {
	_, err := runGit(dir, "rev-parse", "--git-dir")
	return err == nil
}

// RootDir returns the top level of the worktree containing dir
func RootDir(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// MainWorktree returns the top level of the main worktree for dir. For a
// linked worktree this is the repository it was added from.
func MainWorktree(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", err
	}
	common := strings.TrimSpace(out)
	if filepath.Base(common) != ".git" {
		// Bare repo or separate git dir: no main worktree to point at
		return RootDir(dir)
	}
	return filepath.Dir(common), nil
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
