package types

// Logger is the structured logging interface the library emits through.
//
// The Manager and the built-in strategies log coordination events (leadership
// transitions, published assignment versions, offline-validator filtering)
// with alternating key-value context, so any sugared structured logger fits:
// zap.SugaredLogger satisfies it directly, and internal/logging provides a
// log/slog adapter plus the no-op default.
type Logger interface {
	// Debug logs fine-grained diagnostics, such as per-assignment
	// calculation details.
	Debug(msg string, keysAndValues ...any)

	// Info logs normal coordination events: startup, leadership changes,
	// applied assignment versions.
	Info(msg string, keysAndValues ...any)

	// Warn logs recoverable conditions, such as configuration values that
	// work but invite trouble, or a failed lease release during shutdown.
	Warn(msg string, keysAndValues ...any)

	// Error logs failures the Manager survives, like an unreachable
	// validator source or a failed KV publish.
	Error(msg string, keysAndValues ...any)

	// Fatal logs an unrecoverable failure and is expected to terminate the
	// process. The library itself never calls Fatal; it is part of the
	// interface so a caller's existing logger can be passed in unchanged.
	Fatal(msg string, keysAndValues ...any)
}
