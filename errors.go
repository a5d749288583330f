package shardassign

import "github.com/birchmd/shardassign/types"

// Sentinel errors returned by the Manager and strategies, re-exported from
// the types package so callers can match them with errors.Is without an
// extra import.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrNATSConnectionRequired is returned when NATS connection is nil.
	ErrNATSConnectionRequired = types.ErrNATSConnectionRequired

	// ErrValidatorSourceRequired is returned when validator source is nil.
	ErrValidatorSourceRequired = types.ErrValidatorSourceRequired

	// ErrAssignmentStrategyRequired is returned when assignment strategy is nil.
	ErrAssignmentStrategyRequired = types.ErrAssignmentStrategyRequired

	// ErrAlreadyStarted is returned when Start is called on an already running manager.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when operations require a started manager.
	ErrNotStarted = types.ErrNotStarted

	// ErrNoAssignment is returned when no assignment has been published yet.
	ErrNoAssignment = types.ErrNoAssignment

	// ErrElectionFailed is returned when leader election fails.
	ErrElectionFailed = types.ErrElectionFailed

	// ErrAssignmentFailed is returned when assignment calculation or distribution fails.
	ErrAssignmentFailed = types.ErrAssignmentFailed

	// ErrInsufficientValidators is returned when the validator set cannot
	// fill even one shard's minimum quota.
	ErrInsufficientValidators = types.ErrInsufficientValidators

	// ErrInvalidShardCount is returned when the shard count is not positive.
	ErrInvalidShardCount = types.ErrInvalidShardCount
)
