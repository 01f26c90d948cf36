// Package input expands command arguments that read task text from stdin
// (-) or from a file (@path), one task per line.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrStdinReused is returned when - appears more than once
var ErrStdinReused = errors.New("stdin can only be read once")

// IsBulk reports whether args use - or @file and so name several tasks
func IsBulk(args []string) bool {
	for _, a := range args {
		if a == "-" || strings.HasPrefix(a, "@") {
			return true
		}
	}
	return false
}

// ExpandArgs replaces - with the lines of stdin and @path with the lines of
// the file. Other args are kept as one line each. Blank lines are dropped.
func ExpandArgs(args []string, stdin io.Reader) ([]string, error) {
	var result []string
	stdinUsed := false
	for _, a := range args {
		switch {
		case a == "-":
			if stdinUsed {
				return nil, ErrStdinReused
			}
			stdinUsed = true
			lines, err := ReadLines(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			result = append(result, lines...)
		case strings.HasPrefix(a, "@"):
			path := strings.TrimPrefix(a, "@")
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			lines, err := ReadLines(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			result = append(result, lines...)
		default:
			if s := strings.TrimSpace(a); s != "" {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

// ReadLines reads the non-empty, trimmed lines of r
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
