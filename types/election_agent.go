package types

import "context"

// ElectionAgent handles leader election for assignment coordination.
//
// Leader election ensures exactly one node calculates and distributes
// shard assignments. The leader is responsible for:
//   - Watching the validator source for set changes
//   - Calculating new assignments via the configured strategy
//   - Publishing assignments to all nodes
//
// Implementations can use:
//   - NATS KV (built-in, recommended)
//   - External agents (Consul, etcd, Zookeeper)
//   - Custom coordination services
//
// The Manager calls ElectionAgent methods during:
//   - Startup and background loop (request/renew leadership)
//   - Shutdown (release leadership)
type ElectionAgent interface {
	// RequestLeadership attempts to acquire leadership.
	//
	// Should use a lease-based mechanism with the specified duration.
	// If already leader, should extend the lease.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - nodeID: The node ID requesting leadership
	//   - leaseDuration: Lease duration in seconds
	//
	// Returns:
	//   - bool: true if leadership acquired/held, false otherwise
	//   - error: Election error (nil on success)
	RequestLeadership(ctx context.Context, nodeID string, leaseDuration int64) (bool, error)

	// RenewLeadership renews the current leadership lease.
	//
	// Called periodically by the leader to maintain leadership.
	// Should fail if leadership was lost (another node became leader).
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - error: Renewal error (nil on success, non-nil indicates leadership lost)
	RenewLeadership(ctx context.Context) error

	// ReleaseLeadership voluntarily releases leadership.
	//
	// Called during graceful shutdown to allow fast leader failover.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - error: Release error (nil on success)
	ReleaseLeadership(ctx context.Context) error

	// IsLeader checks if this node is currently the leader.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - bool: true if this node is the leader
	//   - error: Check error (nil on success)
	IsLeader(ctx context.Context) (bool, error)
}
