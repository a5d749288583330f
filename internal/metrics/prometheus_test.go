package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector_RegistersAndRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheus(reg, "testns")

	collector.RecordAssignment(0.005, true)
	collector.RecordAssignment(0.010, false)
	collector.RecordAssignmentVersion(3)
	collector.RecordValidatorCount(12)
	collector.RecordStakeImbalance(0.05)
	collector.RecordLeadershipChange("node-1")
	collector.RecordHeartbeat("node-1", true)
	collector.RecordKVOperationDuration("put", 0.002)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	names := make(map[string]struct{}, len(families))
	for _, f := range families {
		names[f.GetName()] = struct{}{}
	}
	require.Contains(t, names, "testns_assignment_duration_seconds")
	require.Contains(t, names, "testns_assignment_attempts_total")
	require.Contains(t, names, "testns_assignment_version_current")
	require.Contains(t, names, "testns_manager_leadership_changes_total")
}

func TestPrometheusCollector_DoubleRegistrationTolerated(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewPrometheus(reg, "dup")
	second := NewPrometheus(reg, "dup")

	first.RecordAssignmentVersion(1)
	// Must not panic on AlreadyRegisteredError.
	second.RecordAssignmentVersion(2)
}

func TestNopMetrics_NoPanic(t *testing.T) {
	n := NewNop()

	n.RecordLeadershipChange("node-0")
	n.RecordKVOperationDuration("get", 0.1)
	n.RecordAssignment(0.1, true)
	n.RecordAssignmentVersion(1)
	n.RecordValidatorCount(4)
	n.RecordStakeImbalance(0)
	n.RecordHeartbeat("node-0", false)
}
