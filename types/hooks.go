package types

import "context"

// Hooks defines callbacks for Manager lifecycle events.
//
// All hooks are optional and called asynchronously in background goroutines
// to avoid blocking coordination. Hooks receive the manager's lifecycle
// context which will be cancelled during shutdown.
//
// IMPORTANT: Hook execution behavior:
//   - Hooks run concurrently and may not complete before Stop() returns
//   - The context passed to hooks is cancelled when the manager stops
//   - Hook errors are logged but don't fail manager operations
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Don't block on long I/O operations
//   - Make hooks idempotent (may be called multiple times)
//   - Handle errors gracefully (return error for logging)
type Hooks struct {
	// OnAssignmentChanged is called when a new shard assignment is
	// published. prev is nil for the first assignment a node observes.
	OnAssignmentChanged func(ctx context.Context, prev, next *ShardAssignment) error

	// OnLeadershipChanged is called when this node gains or loses
	// leadership.
	OnLeadershipChanged func(ctx context.Context, isLeader bool) error

	// OnError is called when a recoverable error occurs.
	OnError func(ctx context.Context, err error) error
}
