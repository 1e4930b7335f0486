// Package exercise defines the exercise data model and the discovery index
// that enumerates exercise source files in canonical order.
package exercise

import (
	"path/filepath"
	"strings"
)

// Status is the completion state of an exercise.
type Status string

const (
	// StatusPending marks an exercise whose latest evaluation failed, or
	// which has not been solved yet.
	StatusPending Status = "PENDING"
	// StatusDone marks an exercise whose latest evaluation succeeded.
	StatusDone Status = "DONE"
)

// Exercise is one entry per discovered exercise file. Its Status, Output and
// Error fields are overwritten on every re-evaluation; Path and Hint are set
// once at initialization.
type Exercise struct {
	// Path is the absolute location of the exercise source file.
	Path string
	// Status reflects the most recent evaluation result.
	Status Status
	// Output is the captured stdout of the last successful run, sanitized
	// for display. Empty when the exercise is not DONE.
	Output string
	// Error is the diagnostic text of the last failing run. Empty when DONE.
	Error string
	// Hint is static text resolved from the settings collaborator.
	Hint string
}

// Name returns the exercise file name, the key of the runtime collection.
// Names are assumed unique across topics by the directory convention.
func (e *Exercise) Name() string {
	return filepath.Base(e.Path)
}

// Done reports whether the exercise is currently complete.
func (e *Exercise) Done() bool {
	return e.Status == StatusDone
}

// Sanitize escapes output for safe display in markup-based renderers.
// Open brackets would otherwise be interpreted as style tags downstream.
func Sanitize(output string) string {
	return strings.ReplaceAll(output, "[", `\[`)
}
