// Package source provides built-in validator source implementations.
//
// Validator sources discover the current validator set for assignment.
// The package includes:
//
//   - Static: Fixed validator list, mutable for tests
//
// Custom sources can be implemented by satisfying the
// types.ValidatorSource interface.
package source
