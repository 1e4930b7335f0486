package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error (including a failing exercise in run mode).
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// PathResolutionError indicates that a caller-supplied path could not be
// mapped to a known exercise: it is missing, malformed, or lies outside the
// exercise tree. It is a boundary (programmer/user) error and is raised to
// the caller rather than being captured as an exercise result.
type PathResolutionError struct {
	// Path is the path as supplied by the caller.
	Path string
	// Reason explains why resolution failed.
	Reason string
}

// Error returns a formatted message describing the resolution failure.
//
// Returns:
//   - string: The error message string.
func (e PathResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve exercise path %q: %s", e.Path, e.Reason)
}

// NewPathResolutionError creates a PathResolutionError with a formatted reason.
//
// Parameters:
//   - path: The offending path.
//   - format: A format string for the reason.
//   - a: Arguments for the format string.
//
// Returns:
//   - error: A new PathResolutionError instance.
func NewPathResolutionError(path string, format string, a ...any) error {
	return PathResolutionError{Path: path, Reason: fmt.Sprintf(format, a...)}
}

// StateError encapsulates a workspace state persistence failure while
// preserving the original cause. This allows for structured error handling
// and inspection of what went wrong while reading or writing session state.
type StateError struct {
	// Cause is the underlying error that triggered this state error.
	Cause error
}

// Error returns the error message from the underlying cause.
//
// Returns:
//   - string: The error message string from the wrapped error.
func (e StateError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the StateError.
func (e StateError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
