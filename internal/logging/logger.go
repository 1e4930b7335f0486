package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Field represents a single structured logging key/value pair.
type Field struct {
	// Key is the field name as it appears in the log output.
	Key string
	// Value is the field value; it is serialized by the backend.
	Value any
}

// String creates a Field holding a string value.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates a Field holding an int value.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a Field holding a uint64 value.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a Field holding a float64 value.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates a Field holding an error under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the minimal structured logging interface used across components.
// It decouples callers from the zerolog backend so that tests can substitute
// a capturing or no-op implementation.
type Logger interface {
	// Debug logs a message at debug level with optional structured fields.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level with optional structured fields.
	Info(msg string, fields ...Field)
	// Warn logs a message at warn level with optional structured fields.
	Warn(msg string, fields ...Field)
	// Error logs a message at error level with optional structured fields.
	Error(msg string, fields ...Field)
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
//
// Parameters:
//   - logger: The zerolog logger to adapt.
//
// Returns:
//   - *ZerologAdapter: The adapted logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger creates a logger writing human-readable output to stderr.
// Stderr keeps diagnostics separate from exercise output on stdout.
//
// Returns:
//   - Logger: The default application logger.
func NewDefaultLogger() Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return &ZerologAdapter{logger: zerolog.New(writer).With().Timestamp().Logger()}
}

// NewLogger creates a logger for a specific component, writing structured
// JSON to the given writer. The component name is attached to every event.
//
// Parameters:
//   - w: The destination writer.
//   - component: The component name attached as a standard field.
//
// Returns:
//   - Logger: The component-scoped logger.
func NewLogger(w io.Writer, component string) Logger {
	return &ZerologAdapter{
		logger: zerolog.New(w).With().Timestamp().Str("component", component).Logger(),
	}
}

// NewNopLogger creates a logger that discards all output. Useful in tests.
//
// Returns:
//   - Logger: A no-op logger.
func NewNopLogger() Logger {
	return &ZerologAdapter{logger: zerolog.New(io.Discard)}
}

// Debug logs a message at debug level with optional structured fields.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	a.emit(a.logger.Debug(), msg, fields)
}

// Info logs a message at info level with optional structured fields.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	a.emit(a.logger.Info(), msg, fields)
}

// Warn logs a message at warn level with optional structured fields.
func (a *ZerologAdapter) Warn(msg string, fields ...Field) {
	a.emit(a.logger.Warn(), msg, fields)
}

// Error logs a message at error level with optional structured fields.
func (a *ZerologAdapter) Error(msg string, fields ...Field) {
	a.emit(a.logger.Error(), msg, fields)
}

// emit attaches fields to the event and sends it.
func (a *ZerologAdapter) emit(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		case nil:
			event = event.Interface(f.Key, nil)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	event.Msg(msg)
}
