package logger

import "context"

type contextKey string

const (
	loggerKey   contextKey = "gracerun.logger"
	handleIDKey contextKey = "gracerun.handle_id"
	workKey     contextKey = "gracerun.work"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithWork records the work handle ID and label on the context.
func WithWork(ctx context.Context, handleID, label string) context.Context {
	ctx = context.WithValue(ctx, handleIDKey, handleID)
	if label != "" {
		ctx = context.WithValue(ctx, workKey, label)
	}
	return ctx
}

// HandleIDFromContext returns the work handle ID, or "" if none is set.
func HandleIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(handleIDKey).(string)
	return id
}

// WorkFromContext returns the work label, or "" if none is set.
func WorkFromContext(ctx context.Context) string {
	label, _ := ctx.Value(workKey).(string)
	return label
}

// L returns the context logger enriched with the work handle fields.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if id := HandleIDFromContext(ctx); id != "" {
		l = l.With("handle_id", id)
	}
	if label := WorkFromContext(ctx); label != "" {
		l = l.With("work", label)
	}

	return l
}
