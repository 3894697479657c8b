// Package log provides a structured logging interface for ctm matrix operations.
//
// This package defines a minimal, slog-compatible logging interface that allows
// the matrix package to report failures and diagnostics without depending on a
// particular backend. The default backend is zerolog (see zerolog.go); slog
// output is available through SetupLogger, and tests capture output with
// TestLogger.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("matrix").With(
//	    log.OperationKey, log.OperationAdd,
//	)
//	logger.Debug("shape mismatch",
//	    log.RowsKey, 2,
//	    log.ColsKey, 3,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. Error additionally accepts
// an error value as its first field; backends attach it under ErrAttrKey.
type Logger interface {
	// Debug logs a debug-level message. The matrix package uses Debug for
	// errors it returns to the caller, so they stay quiet unless asked for.
	Debug(msg string, fields ...any)

	// Info logs an info-level message.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message. Non-fatal diagnostics (degenerate
	// views, replaced non-finite values) are logged at this level.
	Warn(msg string, fields ...any)

	// Error logs an error-level message.
	//
	// Example:
	//   logger.Error("kernel panicked",
	//       err,
	//       log.OperationKey, log.OperationMul,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
