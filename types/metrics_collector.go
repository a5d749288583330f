package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods are called from internal goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	ManagerMetrics
	AssignmentMetrics
	NodeMetrics
}

// ManagerMetrics defines metrics for manager-level operations.
type ManagerMetrics interface {
	// RecordLeadershipChange records a leadership change.
	RecordLeadershipChange(newLeader string)

	// RecordKVOperationDuration records NATS KV operation latency.
	//
	// Parameters:
	//   - operation: Operation type ("get", "put", "watch")
	//   - duration: Time taken in seconds
	RecordKVOperationDuration(operation string, duration float64)
}

// AssignmentMetrics defines metrics for shard assignment calculation and
// distribution.
type AssignmentMetrics interface {
	// RecordAssignment records an assignment calculation attempt.
	//
	// Parameters:
	//   - duration: Time taken in seconds
	//   - success: true if the calculation succeeded
	RecordAssignment(duration float64, success bool)

	// RecordAssignmentVersion sets the currently applied assignment version.
	RecordAssignmentVersion(version int64)

	// RecordValidatorCount sets the size of the validator set last used
	// for assignment (gauge metric).
	RecordValidatorCount(count int)

	// RecordStakeImbalance sets the stake imbalance ratio of the applied
	// assignment: (maxShardStake - minShardStake) / totalStake, in [0, 1].
	RecordStakeImbalance(ratio float64)
}

// NodeMetrics defines metrics for individual node heartbeat operations.
type NodeMetrics interface {
	// RecordHeartbeat records a heartbeat event from this node.
	//
	// Parameters:
	//   - nodeID: The ID of the node publishing the heartbeat
	//   - success: true if the heartbeat was successfully published
	RecordHeartbeat(nodeID string, success bool)
}
