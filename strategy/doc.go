// Package strategy provides built-in assignment strategy implementations.
//
// Assignment strategies determine how validators are distributed across
// shards. The package includes two built-in strategies:
//
//   - StakeWeighted: Quota-first greedy assignment followed by stake
//     balancing (recommended)
//   - RoundRobin: Simple stake-oblivious distribution
//
// # Strategy Selection Guide
//
// StakeWeighted:
//   - Use for consensus-critical shard assignment
//   - Guarantees every shard its minimum validator quota, then keeps
//     per-shard total stake approximately equal
//   - Performs best when the validator set is larger than
//     numShards * minValidatorsPerShard
//
// RoundRobin:
//   - Use for testing or workloads where stake is irrelevant
//   - Guarantees even validator counts, ignores stake entirely
//
// Custom strategies can be implemented by satisfying the
// types.AssignmentStrategy interface.
package strategy
