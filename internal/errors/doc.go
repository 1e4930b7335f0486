// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// path resolution, state persistence) and for carrying the underlying cause.
//
// Per-exercise execution failures are never represented here: they are
// captured as data in runner.Result so that batch evaluation stays resilient
// to individual exercise faults. Only boundary-facing errors (an invalid
// request rather than a failing exercise) are raised.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping error types implement the Unwrap() method to support errors.Is() and errors.As().
package apperrors
