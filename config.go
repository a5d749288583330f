package shardassign

import (
	"fmt"
	"time"

	"github.com/birchmd/shardassign/types"
)

// Default configuration values.
const (
	defaultClusterID         = "shardassign"
	defaultRefreshInterval   = 15 * time.Second
	defaultHeartbeatInterval = 2 * time.Second
	defaultLeaderTTL         = 15 * time.Second
)

// Config is the configuration for the Manager.
//
// All duration fields accept standard Go durations like 30*time.Second.
type Config struct {
	// ClusterID namespaces the NATS KV buckets used for coordination
	// (election, heartbeats, assignments). All nodes of one cluster must
	// use the same ClusterID (default: "shardassign").
	ClusterID string `yaml:"clusterId"`

	// NodeID uniquely identifies this node within the cluster. Required.
	// Typically the validator's own identity.
	NodeID string `yaml:"nodeId"`

	// NumShards is the number of shards to assign validators to. Required, > 0.
	NumShards int `yaml:"numShards"`

	// MinValidatorsPerShard is the minimum number of distinct validators
	// every shard must receive (>= 0). The validator set is cycled when it
	// is too small to fill all shards without reuse.
	MinValidatorsPerShard int `yaml:"minValidatorsPerShard"`

	// RefreshInterval is how often the leader re-lists the validator
	// source and checks for set changes (default: 15s).
	RefreshInterval time.Duration `yaml:"refreshInterval"`

	// HeartbeatInterval is how often this node publishes its heartbeat
	// (default: 2s).
	HeartbeatInterval time.Duration `yaml:"heartbeatInterval"`

	// HeartbeatTTL is how long a heartbeat entry survives without renewal
	// before the node counts as offline (default: 3x HeartbeatInterval).
	HeartbeatTTL time.Duration `yaml:"heartbeatTtl"`

	// LeaderTTL is the leadership lease duration; a crashed leader is
	// replaced after at most this long (default: 15s).
	LeaderTTL time.Duration `yaml:"leaderTtl"`

	// ExcludeOffline makes the leader drop validators whose node has no
	// live heartbeat entry before calculating assignments. Only meaningful
	// when validator IDs double as node IDs (default: false).
	ExcludeOffline bool `yaml:"excludeOffline"`
}

// SetDefaults fills in missing configuration values with defaults.
//
// Called automatically by NewManager; exposed for callers that validate
// configuration up front.
//
// Parameters:
//   - cfg: Configuration to normalize (modified in place)
func SetDefaults(cfg *Config) {
	if cfg.ClusterID == "" {
		cfg.ClusterID = defaultClusterID
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = defaultHeartbeatInterval
	}
	if cfg.HeartbeatTTL <= 0 {
		cfg.HeartbeatTTL = 3 * cfg.HeartbeatInterval
	}
	if cfg.LeaderTTL <= 0 {
		cfg.LeaderTTL = defaultLeaderTTL
	}
}

// Validate checks the configuration for hard errors.
//
// Returns:
//   - error: ErrInvalidConfig (wrapped with detail) or nil
func (c *Config) Validate() error {
	if c.NodeID == "" {
		return fmt.Errorf("%w: NodeID is required", types.ErrInvalidConfig)
	}
	if c.NumShards <= 0 {
		return fmt.Errorf("%w: NumShards must be positive, got %d", types.ErrInvalidConfig, c.NumShards)
	}
	if c.MinValidatorsPerShard < 0 {
		return fmt.Errorf("%w: MinValidatorsPerShard must be non-negative, got %d",
			types.ErrInvalidConfig, c.MinValidatorsPerShard)
	}
	if c.HeartbeatTTL <= c.HeartbeatInterval {
		return fmt.Errorf("%w: HeartbeatTTL (%s) must exceed HeartbeatInterval (%s)",
			types.ErrInvalidConfig, c.HeartbeatTTL, c.HeartbeatInterval)
	}

	return nil
}

// ValidateWithWarnings logs non-fatal configuration concerns.
//
// Parameters:
//   - logger: Logger for warnings
func (c *Config) ValidateWithWarnings(logger types.Logger) {
	if c.HeartbeatTTL < 2*c.HeartbeatInterval {
		logger.Warn("HeartbeatTTL below 2x HeartbeatInterval; a single missed beat marks the node offline",
			"heartbeat_ttl", c.HeartbeatTTL,
			"heartbeat_interval", c.HeartbeatInterval,
		)
	}
	if c.ExcludeOffline && c.RefreshInterval > c.HeartbeatTTL {
		logger.Warn("RefreshInterval exceeds HeartbeatTTL; the offline filter may lag behind node failures",
			"refresh_interval", c.RefreshInterval,
			"heartbeat_ttl", c.HeartbeatTTL,
		)
	}
	if c.LeaderTTL < 3*time.Second {
		logger.Warn("very short LeaderTTL may cause leadership flapping", "leader_ttl", c.LeaderTTL)
	}
}

// Bucket name helpers. Buckets are namespaced per cluster so multiple
// clusters can share one NATS deployment.

func (c *Config) electionBucket() string {
	return c.ClusterID + "-election"
}

func (c *Config) heartbeatBucket() string {
	return c.ClusterID + "-heartbeats"
}

func (c *Config) assignmentBucket() string {
	return c.ClusterID + "-assignments"
}
