// Package logger provides structured logging for gracerun.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, JSON and text handlers, level control
//   - context.go: context propagation of the logger and work handle fields
//   - redact.go: masking of values whose keys look sensitive
//
// The level is process-wide and can be changed at runtime with SetLevel,
// which the configuration watcher uses on reload.
package logger
