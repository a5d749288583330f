package strategy

import (
	"fmt"

	"github.com/birchmd/shardassign/types"
)

// RoundRobin implements simple stake-oblivious shard assignment.
type RoundRobin struct{}

var _ types.AssignmentStrategy = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin strategy.
//
// The strategy cycles the validator set across shards in index order,
// producing even validator counts but ignoring stake entirely. Useful as a
// baseline and for tests; for consensus-critical assignment prefer
// NewStakeWeighted.
//
// Returns:
//   - *RoundRobin: Initialized round-robin strategy
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Assign distributes validators across shards in round-robin fashion.
//
// The same bounded cyclic supply as StakeWeighted is used, so every shard
// receives its minimum quota when validator IDs are distinct. A slot whose
// natural shard already holds the validator is probed forward to the next
// shard without it.
//
// Parameters:
//   - validators: Ordered validator set (IDs must be distinct)
//   - numShards: Number of shards to fill (> 0)
//   - minValidatorsPerShard: Minimum distinct validators per shard (>= 0)
//
// Returns:
//   - [][]types.Validator: Per-shard validator lists, outer index == shard ID
//   - error: ErrInvalidShardCount or ErrInsufficientValidators
func (rr *RoundRobin) Assign(validators []types.Validator, numShards, minValidatorsPerShard int) ([][]types.Validator, error) {
	if numShards <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, numShards)
	}

	numValidators := len(validators)
	if numValidators < minValidatorsPerShard {
		return nil, fmt.Errorf("%w: %d validators for a quota of %d",
			ErrInsufficientValidators, numValidators, minValidatorsPerShard)
	}

	required := max(numValidators, numShards*minValidatorsPerShard)

	shards := make([][]types.Validator, numShards)
	for i := range shards {
		shards[i] = []types.Validator{}
	}

	for slot := 0; slot < required; slot++ {
		v := validators[slot%numValidators]
		for probe := 0; probe < numShards; probe++ {
			shard := (slot + probe) % numShards
			if !containsID(shards[shard], v.ID) {
				shards[shard] = append(shards[shard], v)
				break
			}
		}
	}

	return shards, nil
}
