// Package status implements a single-slot transient status line.
//
// Every Show supersedes the previous message and invalidates its pending
// clear, so the message on screen is always the latest one until its own
// delay has elapsed.
package status

import "time"

// DefaultDelay is how long a message stays visible
const DefaultDelay = 3 * time.Second

// Line holds the current status message
type Line struct {
	message string
	isError bool
	gen     uint64
}

// Show replaces the current message and returns the generation the
// caller must pass to Expire once the delay has elapsed.
func (l *Line) Show(message string) uint64 {
	l.message = message
	l.isError = false
	l.gen++
	return l.gen
}

// ShowError is Show for failures
func (l *Line) ShowError(message string) uint64 {
	gen := l.Show(message)
	l.isError = true
	return gen
}

// Expire clears the message if gen is still current. It reports whether
// anything was cleared; stale generations are ignored.
func (l *Line) Expire(gen uint64) bool {
	if gen != l.gen || l.message == "" {
		return false
	}
	l.message = ""
	l.isError = false
	return true
}

// Message returns the visible message, empty when cleared
func (l Line) Message() string {
	return l.message
}

// IsError reports whether the visible message is an error
func (l Line) IsError() bool {
	return l.isError
}

// Generation returns the generation of the latest message
func (l Line) Generation() uint64 {
	return l.gen
}
