// Package types provides core type definitions and interfaces for the
// shardassign library.
//
// This package contains shared types that are used across multiple packages
// in the library. By keeping these types in a separate package, we avoid
// import cycles between the main shardassign package and its internal
// implementations.
//
// Key types:
//   - Validator: A stake-weighted block producer eligible for shard assignment
//   - ShardAssignment: A versioned validator-to-shard assignment
//   - AssignmentStrategy: Pluggable assignment algorithm interface
//   - ValidatorSource: Validator set discovery interface
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
