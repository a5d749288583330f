package shardassign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/birchmd/shardassign/internal/election"
	"github.com/birchmd/shardassign/internal/hash"
	"github.com/birchmd/shardassign/internal/heartbeat"
	"github.com/birchmd/shardassign/internal/kvutil"
	"github.com/birchmd/shardassign/internal/logging"
	"github.com/birchmd/shardassign/internal/metrics"
	"github.com/birchmd/shardassign/types"
)

// Coordination KV keys.
const (
	assignmentKey   = "current"
	leaderKey       = "leader"
	heartbeatPrefix = "node-hb"
)

// Manager coordinates shard assignment across a cluster of validator nodes.
//
// Manager is the main entry point of the library for distributed use. It
// handles:
//   - Leader election for assignment coordination
//   - Validator set discovery and change detection (fingerprinting)
//   - Assignment calculation via the configured strategy
//   - Atomic, versioned assignment distribution over NATS JetStream KV
//   - Heartbeat publishing and optional offline-validator filtering
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Assignment updates are copy-on-write; returned assignments must be
//     treated as read-only
//
// Lifecycle:
//   - Create with NewManager()
//   - Call Start() to begin coordination
//   - Use hooks or Subscribe to react to assignment changes
//   - Call Stop() for graceful shutdown
//
// Testing:
// Consumers can define minimal interfaces for mocking:
//
//	type ShardCoordinator interface {
//	    Start(ctx context.Context) error
//	    Assignment() (*shardassign.ShardAssignment, error)
//	}
type Manager struct {
	cfg      Config
	conn     *nats.Conn
	source   ValidatorSource
	strategy AssignmentStrategy

	// Optional dependencies
	electionAgent ElectionAgent
	hooks         *Hooks
	metrics       MetricsCollector
	logger        Logger

	// Internal components
	heartbeat *heartbeat.Publisher

	// KV buckets for coordination
	heartbeatKV  jetstream.KeyValue
	assignmentKV jetstream.KeyValue

	// State management
	isLeader   atomic.Bool
	assignment atomic.Pointer[types.ShardAssignment]

	subscribers *xsync.Map[uint64, func(*types.ShardAssignment)]
	nextSubID   atomic.Uint64

	// Lifecycle management
	lifecycleCtx context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.Mutex
	started      bool
}

// NewManager creates a new Manager instance with the provided configuration.
//
// Returns a concrete *Manager struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration (defaults are filled in for zero fields)
//   - conn: NATS connection for coordination
//   - source: Validator source for discovering the validator set
//   - strategy: Assignment strategy (recommended: strategy.NewStakeWeighted())
//   - opts: Optional configuration (hooks, metrics, logger, election agent)
//
// Returns:
//   - *Manager: Initialized manager instance
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := shardassign.Config{NodeID: "node-0", NumShards: 4, MinValidatorsPerShard: 2}
//	src := source.NewStatic(validators)
//	mgr, err := shardassign.NewManager(&cfg, natsConn, src, strategy.NewStakeWeighted())
func NewManager(cfg *Config, conn *nats.Conn, source ValidatorSource, strategy AssignmentStrategy, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if conn == nil {
		return nil, ErrNATSConnectionRequired
	}
	if source == nil {
		return nil, ErrValidatorSourceRequired
	}
	if strategy == nil {
		return nil, ErrAssignmentStrategyRequired
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &managerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Safe defaults for optional dependencies avoid nil checks everywhere.
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	logger := options.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	cfg.ValidateWithWarnings(logger)

	hooks := options.hooks
	if hooks == nil {
		hooks = &Hooks{}
	}

	return &Manager{
		cfg:           *cfg,
		conn:          conn,
		source:        source,
		strategy:      strategy,
		electionAgent: options.electionAgent,
		hooks:         hooks,
		metrics:       metricsCollector,
		logger:        logger,
		subscribers:   xsync.NewMap[uint64, func(*types.ShardAssignment)](),
	}, nil
}

// Start begins coordination: it creates the KV buckets, starts heartbeat
// publishing, joins leader election, and begins watching for published
// assignments.
//
// Parameters:
//   - ctx: Context for startup operations (bucket creation, first heartbeat)
//
// Returns:
//   - error: ErrAlreadyStarted if running, or a startup failure
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	js, err := jetstream.New(m.conn)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	electionKV, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket: m.cfg.electionBucket(),
		TTL:    m.cfg.LeaderTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure election bucket: %w", err)
	}

	m.heartbeatKV, err = kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket: m.cfg.heartbeatBucket(),
		TTL:    m.cfg.HeartbeatTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure heartbeat bucket: %w", err)
	}

	// Assignments persist across leader changes for version continuity, so
	// no TTL.
	m.assignmentKV, err = kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket: m.cfg.assignmentBucket(),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure assignment bucket: %w", err)
	}

	if m.electionAgent == nil {
		m.electionAgent = election.NewNATSElection(electionKV, leaderKey)
	}

	m.heartbeat = heartbeat.New(m.heartbeatKV, heartbeatPrefix, m.cfg.NodeID, m.cfg.HeartbeatInterval)
	m.heartbeat.SetMetrics(m.metrics)
	if err := m.heartbeat.Start(ctx); err != nil {
		return fmt.Errorf("failed to start heartbeat publisher: %w", err)
	}

	m.lifecycleCtx, m.cancel = context.WithCancel(context.Background())

	m.wg.Add(2)
	go m.watchLoop()
	go m.electionLoop()

	m.started = true
	m.logger.Info("manager started",
		"node_id", m.cfg.NodeID,
		"cluster_id", m.cfg.ClusterID,
		"num_shards", m.cfg.NumShards,
		"min_validators_per_shard", m.cfg.MinValidatorsPerShard,
	)

	return nil
}

// Stop gracefully shuts down the manager.
//
// Releases leadership (if held), stops heartbeat publishing, and waits for
// background goroutines to exit or the provided context to expire.
//
// Parameters:
//   - ctx: Context bounding the shutdown wait
//
// Returns:
//   - error: ErrNotStarted if not running, or ctx.Err() on timeout
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return ErrNotStarted
	}
	m.started = false
	m.mu.Unlock()

	m.cancel()

	if m.isLeader.Load() {
		if err := m.electionAgent.ReleaseLeadership(ctx); err != nil {
			m.logger.Warn("failed to release leadership during shutdown", "error", err)
		}
		m.isLeader.Store(false)
	}

	if err := m.heartbeat.Stop(); err != nil {
		m.logger.Warn("failed to stop heartbeat publisher", "error", err)
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	m.logger.Info("manager stopped", "node_id", m.cfg.NodeID)

	return nil
}

// Assignment returns the currently applied shard assignment.
//
// Returns:
//   - *ShardAssignment: The assignment (must be treated as read-only)
//   - error: ErrNoAssignment if none has been observed yet
func (m *Manager) Assignment() (*ShardAssignment, error) {
	a := m.assignment.Load()
	if a == nil {
		return nil, ErrNoAssignment
	}

	return a, nil
}

// ShardsFor returns the shard IDs the given validator occupies in the
// current assignment.
//
// Parameters:
//   - validatorID: The validator identity to look up
//
// Returns:
//   - []int: Shard IDs (empty if the validator is unassigned)
//   - error: ErrNoAssignment if no assignment has been observed yet
func (m *Manager) ShardsFor(validatorID string) ([]int, error) {
	a := m.assignment.Load()
	if a == nil {
		return nil, ErrNoAssignment
	}

	return a.ShardsFor(validatorID), nil
}

// IsLeader reports whether this node currently leads assignment
// coordination.
func (m *Manager) IsLeader() bool {
	return m.isLeader.Load()
}

// NodeID returns this node's configured ID.
func (m *Manager) NodeID() string {
	return m.cfg.NodeID
}

// Subscribe registers a callback invoked whenever a new assignment is
// applied. Callbacks run on their own goroutine and must not block
// indefinitely.
//
// Parameters:
//   - fn: Callback receiving the applied assignment (read-only)
//
// Returns:
//   - func(): Unsubscribe function
func (m *Manager) Subscribe(fn func(*ShardAssignment)) func() {
	id := m.nextSubID.Add(1)
	m.subscribers.Store(id, fn)

	return func() {
		m.subscribers.Delete(id)
	}
}

// electionLoop periodically requests or renews leadership and triggers
// assignment refresh while leading.
func (m *Manager) electionLoop() {
	defer m.wg.Done()

	// Renew well inside the lease so a single slow round trip does not
	// lose leadership.
	renewInterval := m.cfg.LeaderTTL / 3
	if renewInterval < 500*time.Millisecond {
		renewInterval = 500 * time.Millisecond
	}

	ticker := time.NewTicker(renewInterval)
	defer ticker.Stop()

	refreshTicker := time.NewTicker(m.cfg.RefreshInterval)
	defer refreshTicker.Stop()

	m.electionTick()

	for {
		select {
		case <-m.lifecycleCtx.Done():
			return
		case <-ticker.C:
			m.electionTick()
		case <-refreshTicker.C:
			if m.isLeader.Load() {
				m.refreshAssignment(m.lifecycleCtx)
			}
		}
	}
}

// electionTick runs one round of leadership acquisition/renewal.
func (m *Manager) electionTick() {
	ctx, cancel := context.WithTimeout(m.lifecycleCtx, 5*time.Second)
	defer cancel()

	leaseSeconds := int64(m.cfg.LeaderTTL / time.Second)
	if leaseSeconds < 1 {
		leaseSeconds = 1
	}

	acquired, err := m.electionAgent.RequestLeadership(ctx, m.cfg.NodeID, leaseSeconds)
	if err != nil {
		if m.lifecycleCtx.Err() == nil {
			m.logger.Warn("leadership request failed", "error", err)
			m.notifyError(fmt.Errorf("%w: %w", ErrElectionFailed, err))
		}

		acquired = false
	}

	wasLeader := m.isLeader.Swap(acquired)
	if wasLeader == acquired {
		return
	}

	if acquired {
		m.logger.Info("gained leadership", "node_id", m.cfg.NodeID)
		m.metrics.RecordLeadershipChange(m.cfg.NodeID)
		// Compute immediately instead of waiting out a refresh interval.
		m.refreshAssignment(m.lifecycleCtx)
	} else {
		m.logger.Info("lost leadership", "node_id", m.cfg.NodeID)
	}

	if m.hooks.OnLeadershipChanged != nil {
		go func() {
			if err := m.hooks.OnLeadershipChanged(m.lifecycleCtx, acquired); err != nil {
				m.logger.Error("OnLeadershipChanged hook failed", "error", err)
			}
		}()
	}
}

// refreshAssignment recalculates and publishes the assignment if the
// validator set changed since the last published version. Leader only.
func (m *Manager) refreshAssignment(ctx context.Context) {
	validators, err := m.source.ListValidators(ctx)
	if err != nil {
		m.logger.Error("failed to list validators", "error", err)
		m.notifyError(err)

		return
	}

	if m.cfg.ExcludeOffline {
		validators, err = m.filterOffline(ctx, validators)
		if err != nil {
			m.logger.Error("failed to filter offline validators", "error", err)
			m.notifyError(err)

			return
		}
	}

	fingerprint := hash.Fingerprint(validators)

	latest, err := m.latestAssignment(ctx)
	if err != nil {
		m.logger.Error("failed to read published assignment", "error", err)
		m.notifyError(err)

		return
	}
	if latest != nil && latest.Fingerprint == fingerprint {
		return
	}

	start := time.Now()
	shards, err := m.strategy.Assign(validators, m.cfg.NumShards, m.cfg.MinValidatorsPerShard)
	m.metrics.RecordAssignment(time.Since(start).Seconds(), err == nil)
	if err != nil {
		m.logger.Error("assignment calculation failed",
			"error", err,
			"validators", len(validators),
			"num_shards", m.cfg.NumShards,
		)
		m.notifyError(fmt.Errorf("%w: %w", ErrAssignmentFailed, err))

		return
	}

	var version int64 = 1
	if latest != nil {
		version = latest.Version + 1
	}

	next := &types.ShardAssignment{
		Version:     version,
		Fingerprint: fingerprint,
		Shards:      shards,
	}

	data, err := json.Marshal(next)
	if err != nil {
		m.notifyError(fmt.Errorf("%w: marshal: %w", ErrAssignmentFailed, err))

		return
	}

	putStart := time.Now()
	_, err = m.assignmentKV.Put(ctx, assignmentKey, data)
	m.metrics.RecordKVOperationDuration("put", time.Since(putStart).Seconds())
	if err != nil {
		m.logger.Error("failed to publish assignment", "error", err, "version", version)
		m.notifyError(fmt.Errorf("%w: publish: %w", ErrAssignmentFailed, err))

		return
	}

	m.metrics.RecordValidatorCount(len(validators))
	m.logger.Info("published shard assignment",
		"version", version,
		"validators", len(validators),
		"slots", next.TotalSlots(),
	)
}

// filterOffline drops validators whose node has no live heartbeat entry.
func (m *Manager) filterOffline(ctx context.Context, validators []types.Validator) ([]types.Validator, error) {
	active, err := heartbeat.ListActive(ctx, m.heartbeatKV, heartbeatPrefix)
	if err != nil {
		return nil, err
	}

	live := make([]types.Validator, 0, len(validators))
	for _, v := range validators {
		if _, ok := active[v.ID]; ok {
			live = append(live, v)
		}
	}

	if len(live) < len(validators) {
		m.logger.Warn("excluding offline validators from assignment",
			"offline", len(validators)-len(live),
			"total", len(validators),
		)
	}

	return live, nil
}

// latestAssignment returns the freshest known assignment, consulting the
// KV store as well as the locally applied copy. A new leader can win the
// election before its watch replays the previously published assignment;
// seeding the version from memory alone would then restart the sequence at
// 1 and every node still holding the higher version would ignore all
// subsequent publishes.
func (m *Manager) latestAssignment(ctx context.Context) (*types.ShardAssignment, error) {
	latest := m.assignment.Load()

	getStart := time.Now()
	entry, err := m.assignmentKV.Get(ctx, assignmentKey)
	m.metrics.RecordKVOperationDuration("get", time.Since(getStart).Seconds())
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return latest, nil
		}

		return nil, fmt.Errorf("failed to read published assignment: %w", err)
	}

	var stored types.ShardAssignment
	if err := json.Unmarshal(entry.Value(), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode published assignment: %w", err)
	}

	if latest == nil || stored.Version > latest.Version {
		return &stored, nil
	}

	return latest, nil
}

// watchLoop applies assignments published to the assignment bucket. Every
// node, the leader included, applies assignments from the same watch
// stream so all nodes observe identical state.
func (m *Manager) watchLoop() {
	defer m.wg.Done()

	watcher, err := m.assignmentKV.Watch(m.lifecycleCtx, assignmentKey)
	if err != nil {
		if m.lifecycleCtx.Err() == nil {
			m.logger.Error("failed to watch assignment bucket", "error", err)
			m.notifyError(err)
		}

		return
	}
	defer func() { _ = watcher.Stop() }()

	for {
		select {
		case <-m.lifecycleCtx.Done():
			return
		case entry, ok := <-watcher.Updates():
			if !ok {
				return
			}
			if entry == nil {
				// End of initial replay.
				continue
			}
			if entry.Operation() != jetstream.KeyValuePut {
				continue
			}

			var next types.ShardAssignment
			if err := json.Unmarshal(entry.Value(), &next); err != nil {
				m.logger.Error("failed to decode published assignment", "error", err)
				m.notifyError(err)

				continue
			}

			m.applyAssignment(&next)
		}
	}
}

// applyAssignment installs a newly observed assignment and fans it out to
// hooks and subscribers. Stale versions are ignored.
func (m *Manager) applyAssignment(next *types.ShardAssignment) {
	prev := m.assignment.Load()
	if prev != nil && next.Version <= prev.Version {
		return
	}

	m.assignment.Store(next)
	m.metrics.RecordAssignmentVersion(next.Version)
	m.metrics.RecordStakeImbalance(stakeImbalance(next))

	m.logger.Info("applied shard assignment",
		"version", next.Version,
		"shards", next.NumShards(),
		"slots", next.TotalSlots(),
	)

	if m.hooks.OnAssignmentChanged != nil {
		go func() {
			if err := m.hooks.OnAssignmentChanged(m.lifecycleCtx, prev, next); err != nil {
				m.logger.Error("OnAssignmentChanged hook failed", "error", err)
			}
		}()
	}

	m.subscribers.Range(func(_ uint64, fn func(*types.ShardAssignment)) bool {
		go fn(next)

		return true
	})
}

// notifyError delivers a recoverable error to the OnError hook.
func (m *Manager) notifyError(err error) {
	if m.hooks.OnError == nil {
		return
	}

	go func() {
		if hookErr := m.hooks.OnError(m.lifecycleCtx, err); hookErr != nil {
			m.logger.Error("OnError hook failed", "error", hookErr)
		}
	}()
}

// stakeImbalance computes (maxShardStake - minShardStake) / totalStake for
// an assignment, as a float in [0, 1]. Returns 0 for empty assignments.
func stakeImbalance(a *types.ShardAssignment) float64 {
	if a.NumShards() == 0 {
		return 0
	}

	minStake := a.ShardStake(0)
	maxStake := a.ShardStake(0)
	total := new(big.Int)
	for i := 0; i < a.NumShards(); i++ {
		stake := a.ShardStake(i)
		if stake.Cmp(minStake) < 0 {
			minStake = stake
		}
		if stake.Cmp(maxStake) > 0 {
			maxStake = stake
		}
		total.Add(total, stake.ToBig())
	}

	if total.Sign() == 0 {
		return 0
	}

	spread := new(big.Int).Sub(maxStake.ToBig(), minStake.ToBig())
	ratio, _ := new(big.Float).Quo(
		new(big.Float).SetInt(spread),
		new(big.Float).SetInt(total),
	).Float64()

	return ratio
}
