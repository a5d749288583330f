package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/birchmd/shardassign/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	assignmentDuration prometheus.Histogram
	assignmentResults  *prometheus.CounterVec
	assignmentVersion  prometheus.Gauge
	validatorCount     prometheus.Gauge
	stakeImbalance     prometheus.Gauge
	leadershipChanges  prometheus.Counter
	heartbeatResults   *prometheus.CounterVec
	kvOperationLatency *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "shardassign" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "shardassign"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.assignmentDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "duration_seconds",
			Help:      "Latency of shard assignment calculations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms .. ~0.8s
		})
		p.assignmentResults = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "attempts_total",
			Help:      "Total shard assignment attempts by result (success,failure).",
		}, []string{"result"})
		p.assignmentVersion = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "version_current",
			Help:      "Version of the currently applied shard assignment.",
		})
		p.validatorCount = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "validators_current",
			Help:      "Size of the validator set used for the current assignment.",
		})
		p.stakeImbalance = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "stake_imbalance_ratio",
			Help:      "Stake imbalance of the current assignment: (max-min)/total shard stake.",
		})
		p.leadershipChanges = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "manager",
			Name:      "leadership_changes_total",
			Help:      "Total leadership changes observed.",
		})
		p.heartbeatResults = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "node",
			Name:      "heartbeats_total",
			Help:      "Total heartbeats published by result (success,failure).",
		}, []string{"result"})
		p.kvOperationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "manager",
			Name:      "kv_operation_seconds",
			Help:      "Latency of NATS KV operations in seconds by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		}, []string{"op"})

		collectors := []prometheus.Collector{
			p.assignmentDuration,
			p.assignmentResults,
			p.assignmentVersion,
			p.validatorCount,
			p.stakeImbalance,
			p.leadershipChanges,
			p.heartbeatResults,
			p.kvOperationLatency,
		}
		for _, c := range collectors {
			// AlreadyRegisteredError is tolerated so two collectors with the
			// same namespace can coexist in tests.
			if err := p.reg.Register(c); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
					panic(err)
				}
			}
		}
	})
}

// RecordLeadershipChange increments the leadership change counter.
func (p *PrometheusCollector) RecordLeadershipChange(_ /* newLeader */ string) {
	p.ensureRegistered()
	p.leadershipChanges.Inc()
}

// RecordKVOperationDuration observes a KV operation latency.
func (p *PrometheusCollector) RecordKVOperationDuration(operation string, duration float64) {
	p.ensureRegistered()
	p.kvOperationLatency.WithLabelValues(operation).Observe(duration)
}

// RecordAssignment observes an assignment calculation attempt.
func (p *PrometheusCollector) RecordAssignment(duration float64, success bool) {
	p.ensureRegistered()
	p.assignmentDuration.Observe(duration)
	result := "success"
	if !success {
		result = "failure"
	}
	p.assignmentResults.WithLabelValues(result).Inc()
}

// RecordAssignmentVersion sets the applied assignment version gauge.
func (p *PrometheusCollector) RecordAssignmentVersion(version int64) {
	p.ensureRegistered()
	p.assignmentVersion.Set(float64(version))
}

// RecordValidatorCount sets the validator count gauge.
func (p *PrometheusCollector) RecordValidatorCount(count int) {
	p.ensureRegistered()
	p.validatorCount.Set(float64(count))
}

// RecordStakeImbalance sets the stake imbalance gauge.
func (p *PrometheusCollector) RecordStakeImbalance(ratio float64) {
	p.ensureRegistered()
	p.stakeImbalance.Set(ratio)
}

// RecordHeartbeat increments the heartbeat counter.
func (p *PrometheusCollector) RecordHeartbeat(_ /* nodeID */ string, success bool) {
	p.ensureRegistered()
	result := "success"
	if !success {
		result = "failure"
	}
	p.heartbeatResults.WithLabelValues(result).Inc()
}
