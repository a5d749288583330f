package types

import (
	"github.com/holiman/uint256"
)

// Validator represents a stake-weighted block producer eligible for shard
// assignment.
//
// The ID is an opaque identifier; validators are compared by ID only.
// Stake is a 256-bit unsigned integer so that the sum over an entire
// validator set cannot overflow for realistic stake magnitudes (the
// assignment algorithm requires at least 128 bits of range).
type Validator struct {
	// ID uniquely identifies the validator (e.g., an account ID or public
	// key fingerprint). Assignment treats it as opaque.
	ID string `json:"id"`

	// Stake is the validator's stake weight. A nil Stake is treated as zero.
	Stake *uint256.Int `json:"stake"`
}

// NewValidator creates a validator with the given ID and a stake expressed
// as a uint64. Convenience constructor for callers and tests whose stakes
// fit in 64 bits; use the Stake field directly for wider values.
//
// Parameters:
//   - id: Validator identifier
//   - stake: Stake weight
//
// Returns:
//   - Validator: Initialized validator
func NewValidator(id string, stake uint64) Validator {
	return Validator{ID: id, Stake: uint256.NewInt(stake)}
}

// StakeOrZero returns the validator's stake, substituting a zero value when
// the Stake field is nil. The returned value must not be mutated.
func (v Validator) StakeOrZero() *uint256.Int {
	if v.Stake == nil {
		return uint256.NewInt(0)
	}

	return v.Stake
}

// Equal reports whether two validators refer to the same identity.
//
// Only the ID is compared; stake is not part of a validator's identity and
// may differ between epochs.
func (v Validator) Equal(other Validator) bool {
	return v.ID == other.ID
}
