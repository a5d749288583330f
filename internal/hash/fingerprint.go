// Package hash provides stable digests of validator sets.
package hash

import (
	"github.com/zeebo/xxh3"

	"github.com/birchmd/shardassign/types"
)

// Fingerprint returns a stable 64-bit digest of a validator set.
//
// The digest covers both identity and stake of every validator, in order.
// Order sensitivity is deliberate: assignment depends on validator order,
// so the same members in a different order constitute a different input.
//
// The leader uses the fingerprint to skip recomputing an assignment while
// the validator set is unchanged.
//
// Parameters:
//   - validators: Validator set to digest
//
// Returns:
//   - uint64: xxh3 digest of the set
func Fingerprint(validators []types.Validator) uint64 {
	h := xxh3.New()
	var sep = [1]byte{0}
	for _, v := range validators {
		_, _ = h.WriteString(v.ID)
		_, _ = h.Write(sep[:])
		stake := v.StakeOrZero().Bytes32()
		_, _ = h.Write(stake[:])
	}

	return h.Sum64()
}
