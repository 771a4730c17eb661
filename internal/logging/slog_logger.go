// Package logging provides a common interface and setup for application-wide logging.
// file: internal/logging/slog_logger.go
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Level mirrors slog levels so callers do not need to import slog directly.
type Level = slog.Level

// Supported log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// levelVar allows the active level to be changed at runtime.
var levelVar = new(slog.LevelVar)

// slogLogger implements Logger on top of the standard structured logger.
type slogLogger struct {
	logger *slog.Logger
}

// InitLogging configures the application default logger to write JSON
// records at the given level to w. Passing a nil writer logs to stderr.
func InitLogging(level Level, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	levelVar.Set(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelVar})
	SetDefaultLogger(&slogLogger{logger: slog.New(handler)})
}

// SetLevel changes the active log level for the slog-backed logger.
func (l *slogLogger) SetLevel(level Level) {
	levelVar.Set(level)
}

// SetLevel changes the active log level for the default slog configuration.
func SetLevel(level Level) {
	levelVar.Set(level)
}

// IsDebugEnabled reports whether debug-level records are currently emitted.
func IsDebugEnabled() bool {
	return levelVar.Level() <= LevelDebug
}

// Debug logs a debug-level message with structured key/value args.
func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info-level message with structured key/value args.
func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning-level message with structured key/value args.
func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error-level message with structured key/value args.
func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// WithContext returns the logger unchanged; context-scoped values are
// attached per-call by slog handlers, not stored on the logger.
func (l *slogLogger) WithContext(_ context.Context) Logger {
	return l
}

// WithField returns a derived logger carrying an additional field.
func (l *slogLogger) WithField(key string, value any) Logger {
	return &slogLogger{logger: l.logger.With(key, value)}
}
