package strategy

import "github.com/birchmd/shardassign/types"

// Sentinel errors shared by the built-in strategies. These alias the
// definitions in the types package so callers can match them with
// errors.Is regardless of which package they imported.
var (
	// ErrInsufficientValidators indicates the validator set cannot fill
	// even one shard's minimum quota.
	ErrInsufficientValidators = types.ErrInsufficientValidators

	// ErrInvalidShardCount indicates a non-positive shard count.
	ErrInvalidShardCount = types.ErrInvalidShardCount
)
