// Package yalogger provides the structured logging surface used across
// GoYaRSA. It exposes a backend-agnostic Logger interface together with a
// logrus-backed implementation, so library packages log through the interface
// and only the binary decides the backend and its verbosity.
package yalogger

import (
	"github.com/google/uuid"
)

// Config defines the configuration options for the logger.
//
// BaseLoggerType: The type of logger to use (e.g., Logrus).
// Level: The minimum log level to output (e.g., Info).
// FullTimestamp: Whether to include the full timestamp in log messages.
// DisableTimestamp: Whether to disable timestamps in log messages.
// TimestampFormat: The format to use for timestamps in log messages.
type Config struct {
	BaseLoggerType   BaseLoggerType
	Level            Level
	FullTimestamp    bool
	DisableTimestamp bool
	TimestampFormat  string
}

// Level is the minimum severity a message needs to be emitted.
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// BaseLoggerType selects the logging backend.
type BaseLoggerType uint8

const (
	Logrus BaseLoggerType = iota
)

// KeySessionID is the field name carrying the interactive session identifier.
const KeySessionID = "session_id"

// BaseLogger is an interface for creating new Logger instances.
type BaseLogger interface {
	// NewLogger creates a new Logger instance from the base logger.
	//
	// Returns:
	//
	//   - Logger: A new instance of Logger.
	NewLogger() Logger
}

// Logger defines a structured logging interface with support for various log
// levels, formatting, and context-aware logging using key-value fields.
type Logger interface {
	// Info logs a message at the Info level.
	// Used for general operational entries about what's happening inside the application.
	//
	// Example usage:
	//
	//   logger.Info("Key pair generated")
	Info(msg string)

	// Infof logs a formatted message at the Info level.
	// Useful for embedding variable values in log messages.
	//
	// Example usage:
	//
	//   logger.Infof("Generated %d-bit modulus", bits)
	Infof(format string, args ...any)

	// Trace logs a message at the Trace level (very low-level debugging).
	// Best used for tracking detailed flow or internal logic.
	//
	// Example usage:
	//
	//   logger.Trace("Entered prime search loop")
	Trace(msg string)

	// Tracef logs a formatted message at the Trace level.
	//
	// Example usage:
	//
	//   logger.Tracef("Candidate rejected, witness %s", witness)
	Tracef(format string, args ...any)

	// Error logs a message at the Error level.
	// Used to indicate a failure that should be investigated.
	//
	// Example usage:
	//
	//   logger.Error("Key generation failed")
	Error(msg string)

	// Errorf logs a formatted message at the Error level.
	//
	// Example usage:
	//
	//   logger.Errorf("Failed to open keystore: %s", path)
	Errorf(format string, args ...any)

	// Warn logs a message at the Warn level.
	// Used for non-critical issues that might cause problems.
	//
	// Example usage:
	//
	//   logger.Warn("Key size below recommended minimum")
	Warn(msg string)

	// Warnf logs a formatted message at the Warn level.
	//
	// Example usage:
	//
	//   logger.Warnf("Primality rounds lowered to %d", rounds)
	Warnf(format string, args ...any)

	// Debug logs a message at the Debug level.
	// Useful during development to understand application state.
	//
	// Example usage:
	//
	//   logger.Debug("Prime candidate accepted")
	Debug(msg string)

	// Debugf logs a formatted message at the Debug level.
	//
	// Example usage:
	//
	//   logger.Debugf("Prime found after %d attempts", attempts)
	Debugf(format string, args ...any)

	// Fatal logs a message at the Fatal level and terminates the application.
	//
	// Example usage:
	//
	//   logger.Fatal("Configuration missing. Exiting.")
	Fatal(msg string)

	// Fatalf logs a formatted message at the Fatal level.
	//
	// Example usage:
	//
	//   logger.Fatalf("Cannot open keystore: %s", path)
	Fatalf(format string, args ...any)

	// WithField returns a logger instance with a single field added to the context.
	//
	// Example usage:
	//
	//   logger.WithField("bits", 2048)
	WithField(key string, value any) Logger

	// WithFields returns a logger instance with multiple fields added to the context.
	//
	// Example usage:
	//
	//   logger.WithFields(map[string]any{"bits": 2048, "rounds": 20})
	WithFields(fields map[string]any) Logger

	// WithSessionUUID returns a logger with a session UUID in the context.
	// Useful for correlating every operation done with one key pair.
	//
	// Example usage:
	//
	//   logger.WithSessionUUID(uuid.New())
	WithSessionUUID(id uuid.UUID) Logger

	// WithRandomSessionID returns a logger with a freshly generated session
	// UUID. Useful when no external ID is available.
	//
	// Example usage:
	//
	//   logger.WithRandomSessionID()
	WithRandomSessionID() Logger

	// GetFields returns the current log context fields as a map.
	//
	// Example usage:
	//
	//	 fields := logger.GetFields()
	GetFields() map[string]any
}
