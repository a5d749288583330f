package types

import (
	"github.com/holiman/uint256"
)

// ShardAssignment is a complete validator-to-shard assignment.
//
// Assignments are versioned and published atomically; a node always holds
// either no assignment or one complete, internally consistent assignment.
// The slices must be treated as read-only once published.
type ShardAssignment struct {
	// Version is a monotonically increasing assignment version.
	// Used to detect stale assignments and coordinate updates.
	Version int64 `json:"version"`

	// Fingerprint is a digest of the validator set the assignment was
	// computed from. The leader skips recomputation while the fingerprint
	// is unchanged.
	Fingerprint uint64 `json:"fingerprint"`

	// Shards holds the assigned validators per shard; the outer index is
	// the shard ID. Inner order is assignment order, not sorted by stake.
	Shards [][]Validator `json:"shards"`
}

// NumShards returns the number of shards in the assignment.
func (a *ShardAssignment) NumShards() int {
	return len(a.Shards)
}

// TotalSlots returns the total number of assigned validator slots across
// all shards. A validator assigned to multiple shards counts once per
// shard it occupies.
func (a *ShardAssignment) TotalSlots() int {
	total := 0
	for _, shard := range a.Shards {
		total += len(shard)
	}

	return total
}

// ShardStake returns the total stake assigned to shard i.
//
// Parameters:
//   - i: Shard ID in [0, NumShards())
//
// Returns:
//   - *uint256.Int: Sum of the shard's validator stakes (zero if i is out
//     of range)
func (a *ShardAssignment) ShardStake(i int) *uint256.Int {
	total := uint256.NewInt(0)
	if i < 0 || i >= len(a.Shards) {
		return total
	}
	for _, v := range a.Shards[i] {
		total.Add(total, v.StakeOrZero())
	}

	return total
}

// ShardsFor returns the IDs of every shard the given validator is assigned
// to, in ascending order. A validator may legitimately occupy multiple
// shards when the set was cycled to satisfy per-shard quotas.
//
// Parameters:
//   - validatorID: The validator identity to look up
//
// Returns:
//   - []int: Shard IDs containing the validator (empty if none)
func (a *ShardAssignment) ShardsFor(validatorID string) []int {
	shards := make([]int, 0, 1)
	for i, shard := range a.Shards {
		for _, v := range shard {
			if v.ID == validatorID {
				shards = append(shards, i)
				break
			}
		}
	}

	return shards
}
