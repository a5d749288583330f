package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the shardassign library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). All components should use these sentinel errors for known
// error conditions and wrap external errors with context using
// fmt.Errorf("%s: %w", msg, err).

// Strategy errors - returned by AssignmentStrategy implementations.
var (
	// ErrInsufficientValidators is returned when the validator set is too
	// small to fill even one shard's minimum quota. This is a hard
	// precondition failure: no partial assignment is produced.
	ErrInsufficientValidators = errors.New("not enough validators to minimally fill shards")

	// ErrInvalidShardCount is returned when the requested shard count is
	// not positive.
	ErrInvalidShardCount = errors.New("shard count must be positive")
)

// Manager errors - public API errors returned by the Manager component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNATSConnectionRequired is returned when NATS connection is nil.
	ErrNATSConnectionRequired = errors.New("NATS connection is required")

	// ErrValidatorSourceRequired is returned when validator source is nil.
	ErrValidatorSourceRequired = errors.New("validator source is required")

	// ErrAssignmentStrategyRequired is returned when assignment strategy is nil.
	ErrAssignmentStrategyRequired = errors.New("assignment strategy is required")

	// ErrAlreadyStarted is returned when Start is called on an already running manager.
	ErrAlreadyStarted = errors.New("manager already started")

	// ErrNotStarted is returned when operations require a started manager.
	ErrNotStarted = errors.New("manager not started")

	// ErrNoAssignment is returned when no assignment has been published yet.
	ErrNoAssignment = errors.New("no assignment available")

	// ErrElectionFailed is returned when leader election fails.
	ErrElectionFailed = errors.New("leader election failed")

	// ErrAssignmentFailed is returned when assignment calculation or distribution fails.
	ErrAssignmentFailed = errors.New("assignment failed")
)

// Common errors - shared errors used across multiple components.
var (
	// ErrContextCanceled is returned when an operation is canceled by context.
	ErrContextCanceled = errors.New("operation canceled by context")

	// ErrNoKeysFound is returned when NATS KV returns no keys (expected condition).
	ErrNoKeysFound = errors.New("no keys found")
)

// IsNoKeysFoundError checks if an error indicates that no keys were found
// in NATS KV.
//
// This function handles NATS-specific "no keys found" errors which may come as:
//   - Direct error: "nats: no keys found"
//   - Wrapped error: "failed to list KV keys: nats: no keys found"
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates no keys were found, false otherwise
func IsNoKeysFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoKeysFound) {
		return true
	}
	// NATS-specific error message (handles both direct and wrapped errors)
	return strings.Contains(err.Error(), "no keys found")
}
