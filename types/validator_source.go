package types

import "context"

// ValidatorSource discovers and provides the current validator set.
//
// Implementations can query various backends:
//   - Staking contract or chain state: the authoritative validator registry
//   - Static: fixed list for testing
//   - Custom: any dynamic validator discovery logic
//
// The Manager calls ListValidators on the leader node during:
//   - Startup (initial assignment)
//   - Periodic refresh (every Config.RefreshInterval)
type ValidatorSource interface {
	// ListValidators returns the current validator set in a stable order.
	//
	// Implementations should:
	//   - Return consistent results for the same backend state, in a
	//     deterministic order (ordering affects shard assignment)
	//   - Handle context cancellation gracefully
	//   - Return errors for transient failures (will be retried)
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []Validator: The current validator set
	//   - error: Discovery error (nil on success)
	ListValidators(ctx context.Context) ([]Validator, error)
}
