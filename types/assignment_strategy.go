package types

// AssignmentStrategy calculates validator-to-shard assignments.
//
// Strategies implement different assignment algorithms:
//   - StakeWeighted: Quota-first greedy assignment that then balances total
//     stake per shard (recommended)
//   - RoundRobin: Simple stake-oblivious distribution
//   - Custom: User-defined algorithms
//
// The leader node calls Assign during:
//   - Initial assignment calculation
//   - Validator set changes (join/leave, stake updates)
//   - Manual rebalancing
//
// Strategy implementations should:
//   - Be deterministic (same input produces the same output)
//   - Be stateless (every call independent, no side effects)
//   - Run quickly (called on the coordination hot path)
type AssignmentStrategy interface {
	// Assign distributes validators across numShards shards so that every
	// shard receives at least minValidatorsPerShard distinct validators.
	//
	// Validator order is meaningful: it determines cycling order when the
	// set must be reused to satisfy quotas, and first-come tie-breaking.
	//
	// Parameters:
	//   - validators: Ordered validator set (IDs must be distinct)
	//   - numShards: Number of shards to fill (> 0)
	//   - minValidatorsPerShard: Minimum distinct validators per shard (>= 0)
	//
	// Returns:
	//   - [][]Validator: Per-shard validator lists, outer index == shard ID
	//   - error: ErrInsufficientValidators when len(validators) is below the
	//     quota, or a strategy-specific validation error
	Assign(validators []Validator, numShards, minValidatorsPerShard int) ([][]Validator, error)
}
