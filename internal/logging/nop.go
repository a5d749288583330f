package logging

import "github.com/birchmd/shardassign/types"

// NopLogger implements a no-op logger. All messages are discarded.
type NopLogger struct{}

var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger.
//
// Used as the default logger when none is configured.
//
// Returns:
//   - *NopLogger: A logger that discards everything
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (l *NopLogger) Debug(_ string, _ ...any) {}

// Info discards the message.
func (l *NopLogger) Info(_ string, _ ...any) {}

// Warn discards the message.
func (l *NopLogger) Warn(_ string, _ ...any) {}

// Error discards the message.
func (l *NopLogger) Error(_ string, _ ...any) {}

// Fatal discards the message. Unlike real loggers it does not exit; a
// no-op logger must never terminate the host process.
func (l *NopLogger) Fatal(_ string, _ ...any) {}
