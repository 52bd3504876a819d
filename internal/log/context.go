package log

import (
	"context"
	"log/slog"
)

// ContextKey type for context keys
type ContextKey string

// LoggerContextKey is the context key for the logger
const LoggerContextKey ContextKey = "logger"

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts the logger stored by WithContext, falling back to the
// default slog logger.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{Logger: slog.Default(), component: "unknown"}
}

// LogOutcome logs the result of an operation: info on success, warn when the
// caller was at fault and error otherwise.
func (l *Logger) LogOutcome(ctx context.Context, msg string, fields LogFields, err error) {
	fields = fields.With(FieldSuccess, err == nil).WithError(err)
	switch {
	case err == nil:
		l.InfoContext(ctx, msg, fields.ToSlice()...)
	case ErrorType(err) == ErrorTypeInternal:
		l.ErrorContext(ctx, msg, fields.ToSlice()...)
	default:
		l.WarnContext(ctx, msg, fields.ToSlice()...)
	}
}
