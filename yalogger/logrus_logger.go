package yalogger

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// logrusAdapter is an adapter that implements the Logger interface using a
// logrus.Entry. It wraps a logrus.Entry to provide structured logging.
type logrusAdapter struct {
	entry *logrus.Entry
}

// baseLogrus holds a reference to a logrus.Logger instance.
// It serves as the base logger from which new Logger instances can be created.
type baseLogrus struct {
	logger *logrus.Logger
}

// NewBaseLogger creates and configures a new base logger based on the provided
// configuration.
//
// Returns:
//
//   - BaseLogger: An instance of the base logger for further use.
//
// Notes:
//
//   - A nil config falls back to a Debug-level logrus logger without timestamps.
//   - If the logger type specified in config is not supported, the function panics.
func NewBaseLogger(config *Config) BaseLogger {
	if config == nil {
		config = &Config{
			BaseLoggerType:   Logrus,
			Level:            DebugLevel,
			FullTimestamp:    false,
			TimestampFormat:  "2006-01-02 15:04:05",
			DisableTimestamp: true,
		}
	}

	switch config.BaseLoggerType {
	case Logrus:
		base := logrus.New()
		base.SetLevel(logrus.Level(config.Level))
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    config.FullTimestamp,
			TimestampFormat:  config.TimestampFormat,
			DisableTimestamp: config.DisableTimestamp,
		})

		return &baseLogrus{logger: base}
	default:
		panic("Unsupported logger type, you are a teapot!!!")
	}
}

// NewLogger creates a new Logger instance from the base logrus logger.
// It wraps the underlying logrus.Logger into a logrusAdapter, which implements
// the Logger interface.
//
// Returns:
//
//   - Logger: A new instance of logrusAdapter wrapping a fresh logrus.Entry.
func (b *baseLogrus) NewLogger() Logger {
	return &logrusAdapter{entry: logrus.NewEntry(b.logger)}
}

func (l *logrusAdapter) Info(msg string) {
	l.entry.Info(msg)
}

func (l *logrusAdapter) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *logrusAdapter) Trace(msg string) {
	l.entry.Trace(msg)
}

func (l *logrusAdapter) Tracef(format string, args ...any) {
	l.entry.Tracef(format, args...)
}

func (l *logrusAdapter) Error(msg string) {
	l.entry.Error(msg)
}

func (l *logrusAdapter) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *logrusAdapter) Warn(msg string) {
	l.entry.Warn(msg)
}

func (l *logrusAdapter) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logrusAdapter) Debug(msg string) {
	l.entry.Debug(msg)
}

func (l *logrusAdapter) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *logrusAdapter) Fatal(msg string) {
	l.entry.Fatal(msg)
}

func (l *logrusAdapter) Fatalf(format string, args ...any) {
	l.entry.Fatalf(format, args...)
}

// WithField returns a logger with one extra context field.
func (l *logrusAdapter) WithField(key string, value any) Logger {
	return &logrusAdapter{entry: l.entry.WithField(key, value)}
}

// WithFields returns a logger with several extra context fields.
func (l *logrusAdapter) WithFields(fields map[string]any) Logger {
	return &logrusAdapter{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithSessionUUID returns a logger carrying the given session identifier.
func (l *logrusAdapter) WithSessionUUID(id uuid.UUID) Logger {
	return l.WithField(KeySessionID, id.String())
}

// WithRandomSessionID returns a logger carrying a freshly generated session
// identifier.
func (l *logrusAdapter) WithRandomSessionID() Logger {
	return l.WithSessionUUID(uuid.New())
}

// GetFields returns a copy of the current context fields.
func (l *logrusAdapter) GetFields() map[string]any {
	fields := make(map[string]any, len(l.entry.Data))
	for key, value := range l.entry.Data {
		fields[key] = value
	}

	return fields
}
