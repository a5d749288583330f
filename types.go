package shardassign

import "github.com/birchmd/shardassign/types"

// Re-export types from the internal types package.
//
// This file provides a stable, backward-compatible public API for the
// library's core types and interfaces. It uses type aliases to re-export
// definitions from the `types` subpackage, which contains the actual
// implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root shardassign
// package, while still providing a convenient `shardassign.Validator`,
// `shardassign.Logger`, etc. for users.
type (
	Validator       = types.Validator
	ShardAssignment = types.ShardAssignment
)

// Re-export interfaces from the internal types package for convenience.
type (
	AssignmentStrategy = types.AssignmentStrategy
	ValidatorSource    = types.ValidatorSource
	ElectionAgent      = types.ElectionAgent
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
	Hooks              = types.Hooks
)

// NewValidator is re-exported for convenience; see types.NewValidator.
var NewValidator = types.NewValidator
