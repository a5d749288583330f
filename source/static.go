package source

import (
	"context"
	"sync"

	"github.com/birchmd/shardassign/types"
)

// Static implements a validator source with a fixed validator set.
type Static struct {
	mu         sync.RWMutex
	validators []types.Validator
}

var _ types.ValidatorSource = (*Static)(nil)

// NewStatic creates a new static validator source.
//
// The source returns a fixed validator set until Update is called.
// Useful for testing and for deployments where the set is known at
// startup.
//
// Parameters:
//   - validators: Fixed validator set, in assignment order
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	validators := []types.Validator{
//	    types.NewValidator("alice", 100),
//	    types.NewValidator("bob", 90),
//	}
//	src := source.NewStatic(validators)
//	mgr, err := shardassign.NewManager(&cfg, nc, src, strategy.NewStakeWeighted())
//	if err != nil { /* handle */ }
func NewStatic(validators []types.Validator) *Static {
	return &Static{validators: validators}
}

// ListValidators returns the current validator set.
//
// Returns:
//   - []types.Validator: Copy of the configured validator set
//   - error: Always nil (never fails)
func (s *Static) ListValidators(_ context.Context) ([]types.Validator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Validator, len(s.validators))
	copy(result, s.validators)

	return result, nil
}

// Update replaces the validator set.
//
// This allows the static source to simulate epoch transitions and stake
// changes, which is useful for testing reassignment.
//
// Parameters:
//   - validators: New validator set
func (s *Static) Update(validators []types.Validator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.validators = make([]types.Validator, len(validators))
	copy(s.validators, validators)
}
