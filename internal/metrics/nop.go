// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/birchmd/shardassign/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// ManagerMetrics implementation

// RecordLeadershipChange discards the leadership change metric.
func (n *NopMetrics) RecordLeadershipChange(_ /* newLeader */ string) {
	// No-op
}

// RecordKVOperationDuration discards the KV operation duration metric.
func (n *NopMetrics) RecordKVOperationDuration(_ /* operation */ string, _ /* duration */ float64) {
	// No-op
}

// AssignmentMetrics implementation

// RecordAssignment discards the assignment attempt metric.
func (n *NopMetrics) RecordAssignment(_ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordAssignmentVersion discards the assignment version metric.
func (n *NopMetrics) RecordAssignmentVersion(_ /* version */ int64) {
	// No-op
}

// RecordValidatorCount discards the validator count metric.
func (n *NopMetrics) RecordValidatorCount(_ /* count */ int) {
	// No-op
}

// RecordStakeImbalance discards the stake imbalance metric.
func (n *NopMetrics) RecordStakeImbalance(_ /* ratio */ float64) {
	// No-op
}

// NodeMetrics implementation

// RecordHeartbeat discards the heartbeat metric.
func (n *NopMetrics) RecordHeartbeat(_ /* nodeID */ string, _ /* success */ bool) {
	// No-op
}
