// Package heartbeat publishes node liveness to a NATS KV store.
//
// Each node writes a heartbeat key at a regular interval; the key carries
// a TTL so a crashed node's entry disappears after a few missed beats.
// The leader can intersect the validator set with the live entries when
// Config.ExcludeOffline is enabled.
package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/birchmd/shardassign/types"
)

// Common errors for heartbeat operations.
var (
	ErrNotStarted     = errors.New("publisher not started")
	ErrAlreadyStarted = errors.New("publisher already started")
	ErrNoNodeID       = errors.New("node ID not set")
)

// Publisher publishes periodic heartbeats to a NATS KV store.
//
// The heartbeat key contains the node's last heartbeat timestamp and is
// automatically deleted when the bucket TTL expires, indicating a crash.
type Publisher struct {
	kv       jetstream.KeyValue
	prefix   string
	nodeID   string
	interval time.Duration
	metrics  types.MetricsCollector

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	ticker  *time.Ticker
}

// New creates a new heartbeat publisher.
//
// The KV bucket should be configured with a TTL of ~3x the heartbeat
// interval so a crash is detected after three missed beats.
//
// Parameters:
//   - kv: JetStream KV bucket for heartbeat storage
//   - prefix: Key prefix for heartbeat keys (e.g., "node-hb")
//   - nodeID: This node's identifier
//   - interval: Heartbeat interval (typically 2s)
//
// Returns:
//   - *Publisher: New heartbeat publisher instance
func New(kv jetstream.KeyValue, prefix, nodeID string, interval time.Duration) *Publisher {
	return &Publisher{
		kv:       kv,
		prefix:   prefix,
		nodeID:   nodeID,
		interval: interval,
	}
}

// SetMetrics sets the metrics collector for heartbeat events.
//
// Optional. If not set, metrics are not recorded. Must be called before
// Start().
func (p *Publisher) SetMetrics(metrics types.MetricsCollector) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.metrics = metrics
}

// Start begins publishing heartbeats in the background.
//
// Publishes the first heartbeat immediately, then at regular intervals,
// until Stop() is called. A stopped publisher can be started again.
//
// Parameters:
//   - ctx: Context for the initial publish
//
// Returns:
//   - error: ErrAlreadyStarted if already running, ErrNoNodeID if the node
//     ID is empty, or the initial publish failure
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	if p.nodeID == "" {
		return ErrNoNodeID
	}

	p.started = true
	p.ticker = time.NewTicker(p.interval)
	// Fresh channels per run so a stopped publisher can be started again.
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	if err := p.publish(ctx); err != nil {
		p.started = false
		p.ticker.Stop()

		return fmt.Errorf("failed to publish initial heartbeat: %w", err)
	}

	go p.publishLoop(p.stopCh, p.doneCh, p.ticker)

	return nil
}

// Stop stops the heartbeat publisher and deletes the heartbeat entry.
//
// Blocks until the publisher goroutine exits. The entry is deleted to
// immediately signal shutdown instead of waiting for TTL expiration.
//
// Returns:
//   - error: ErrNotStarted if not running, or the cleanup error
func (p *Publisher) Stop() error {
	p.mu.Lock()

	if !p.started {
		p.mu.Unlock()
		return ErrNotStarted
	}

	p.ticker.Stop()
	close(p.stopCh)
	p.started = false
	doneCh := p.doneCh

	p.mu.Unlock()

	<-doneCh

	// The node is shutting down, so use a short background timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.kv.Delete(ctx, Key(p.prefix, p.nodeID)); err != nil {
		return fmt.Errorf("stopped but failed to delete heartbeat: %w", err)
	}

	return nil
}

// NodeID returns the publisher's node ID.
func (p *Publisher) NodeID() string {
	return p.nodeID
}

// IsStarted returns whether the publisher is currently running.
func (p *Publisher) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.started
}

func (p *Publisher) publishLoop(stopCh chan struct{}, doneCh chan struct{}, ticker *time.Ticker) {
	defer close(doneCh)

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := p.publish(ctx)
			cancel()

			p.recordMetric(err == nil)
		}
	}
}

func (p *Publisher) publish(ctx context.Context) error {
	value := []byte(time.Now().Format(time.RFC3339Nano))

	if _, err := p.kv.Put(ctx, Key(p.prefix, p.nodeID), value); err != nil {
		return fmt.Errorf("failed to publish heartbeat for %s: %w", p.nodeID, err)
	}

	return nil
}

func (p *Publisher) recordMetric(success bool) {
	p.mu.Lock()
	metrics := p.metrics
	p.mu.Unlock()

	if metrics != nil {
		metrics.RecordHeartbeat(p.nodeID, success)
	}
}

// Key returns the KV key for a node's heartbeat.
func Key(prefix, nodeID string) string {
	return fmt.Sprintf("%s.%s", prefix, nodeID)
}

// ListActive returns the IDs of all nodes with a live heartbeat entry.
//
// An entry is live while its key has not yet been expired by the bucket
// TTL. An empty bucket is not an error; it returns an empty set.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - kv: The heartbeat KV bucket
//   - prefix: Key prefix used by the publishers
//
// Returns:
//   - map[string]struct{}: Set of live node IDs
//   - error: Listing error (nil on success)
func ListActive(ctx context.Context, kv jetstream.KeyValue, prefix string) (map[string]struct{}, error) {
	active := make(map[string]struct{})

	lister, err := kv.ListKeys(ctx)
	if err != nil {
		if types.IsNoKeysFoundError(err) {
			return active, nil
		}

		return nil, fmt.Errorf("failed to list heartbeat keys: %w", err)
	}

	keyPrefix := prefix + "."
	for key := range lister.Keys() {
		if strings.HasPrefix(key, keyPrefix) {
			active[strings.TrimPrefix(key, keyPrefix)] = struct{}{}
		}
	}

	return active, nil
}
