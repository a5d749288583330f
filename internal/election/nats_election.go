package election

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

// Common errors for election operations.
var (
	ErrNotLeader       = errors.New("not the leader")
	ErrLeadershipLost  = errors.New("leadership was lost")
	ErrInvalidDuration = errors.New("invalid lease duration")
)

// NATSElection implements leader election using a NATS KV store.
//
// The leader key contains the node ID and is automatically deleted when
// the bucket TTL expires, allowing automatic failover. All fields are
// protected by mu for thread-safe concurrent access.
type NATSElection struct {
	kv  jetstream.KeyValue
	key string

	mu       sync.RWMutex
	nodeID   string
	revision uint64
	isLeader bool
}

// Compile-time assertion that NATSElection implements ElectionAgent.
var _ types.ElectionAgent = (*NATSElection)(nil)

// NewNATSElection creates a new NATS KV-based election agent.
//
// The KV bucket should be configured with a short TTL (e.g., 10-30s)
// for automatic leader failover when the leader crashes.
//
// Parameters:
//   - kv: JetStream KV bucket for election coordination
//   - key: Key name for the leadership claim (e.g., "leader")
//
// Returns:
//   - *NATSElection: New election agent instance
func NewNATSElection(kv jetstream.KeyValue, key string) *NATSElection {
	return &NATSElection{kv: kv, key: key}
}

// RequestLeadership attempts to acquire or maintain leadership.
//
// Uses an atomic Create for initial acquisition and Update for renewal.
// The lease duration itself is enforced by the KV bucket's TTL.
//
// Parameters:
//   - ctx: Context for timeout
//   - nodeID: The node ID requesting leadership
//   - leaseDuration: Lease duration in seconds (must be positive; the
//     effective lease is the bucket TTL)
//
// Returns:
//   - bool: true if leadership acquired/held, false otherwise
//   - error: Election error or context cancellation
func (e *NATSElection) RequestLeadership(ctx context.Context, nodeID string, leaseDuration int64) (bool, error) {
	if leaseDuration <= 0 {
		return false, ErrInvalidDuration
	}

	isLeader, currentNodeID, _ := e.state()

	// Already leading: renew the existing lease instead of re-creating.
	if isLeader && currentNodeID == nodeID {
		if err := e.RenewLeadership(ctx); err == nil {
			return true, nil
		}
		// Lease renewal failed; fall through and race for a fresh claim.
		e.clear()
	}

	value := []byte(fmt.Sprintf("%s:%d", nodeID, time.Now().Unix()))

	revision, err := e.kv.Create(ctx, e.key, value)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return e.reclaim(ctx, nodeID, value)
		}

		return false, fmt.Errorf("failed to create leader key: %w", err)
	}

	e.set(nodeID, revision)

	return true, nil
}

// reclaim recovers leadership when the live leader key still names this
// node. A failed renewal clears local state, and without this path the
// node would be locked out by its own key until the bucket TTL expires.
func (e *NATSElection) reclaim(ctx context.Context, nodeID string, value []byte) (bool, error) {
	entry, err := e.kv.Get(ctx, e.key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			// Expired between Create and Get; the next round can claim it.
			return false, nil
		}

		return false, fmt.Errorf("failed to read leader key: %w", err)
	}

	holder := string(entry.Value())
	if i := strings.IndexByte(holder, ':'); i >= 0 {
		holder = holder[:i]
	}
	if holder != nodeID {
		// Another node holds the lease.
		return false, nil
	}

	revision, err := e.kv.Update(ctx, e.key, value, entry.Revision())
	if err != nil {
		// Lost a race on the key; stand down for this round.
		return false, nil //nolint:nilerr // losing the race is not an election error
	}

	e.set(nodeID, revision)

	return true, nil
}

// RenewLeadership renews the current leadership lease.
//
// Uses Update with a revision check so a renewal can only succeed while we
// still hold the lease; if another node claimed leadership, this fails.
//
// Returns:
//   - error: ErrNotLeader if not the leader, ErrLeadershipLost if the lease
//     was taken over, nil on success
func (e *NATSElection) RenewLeadership(ctx context.Context) error {
	isLeader, nodeID, revision := e.state()
	if !isLeader {
		return ErrNotLeader
	}

	value := []byte(fmt.Sprintf("%s:%d", nodeID, time.Now().Unix()))

	newRevision, err := e.kv.Update(ctx, e.key, value, revision)
	if err != nil {
		e.clear()

		return fmt.Errorf("%w: %w", ErrLeadershipLost, err)
	}

	e.mu.Lock()
	e.revision = newRevision
	e.mu.Unlock()

	return nil
}

// ReleaseLeadership voluntarily releases leadership.
//
// Deletes the leader key to allow immediate failover to another node
// instead of waiting out the TTL.
//
// Returns:
//   - error: Release error or context cancellation
func (e *NATSElection) ReleaseLeadership(ctx context.Context) error {
	isLeader, _, _ := e.state()
	if !isLeader {
		return ErrNotLeader
	}

	if err := e.kv.Delete(ctx, e.key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete leader key: %w", err)
	}

	e.clear()

	return nil
}

// IsLeader checks if this node is currently the leader.
//
// Verifies against the KV store: the key must still exist at the revision
// we hold, or leadership has silently expired.
//
// Returns:
//   - bool: true if this node is the leader
//   - error: Check error or context cancellation
func (e *NATSElection) IsLeader(ctx context.Context) (bool, error) {
	isLeader, nodeID, revision := e.state()
	if !isLeader {
		return false, nil
	}

	entry, err := e.kv.Get(ctx, e.key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			// Lease expired.
			e.clear()
			return false, nil
		}

		return false, fmt.Errorf("failed to verify leadership: %w", err)
	}

	if entry.Revision() != revision || string(entry.Value()) == "" {
		e.clear()
		return false, nil
	}

	// Defensive: key may have been re-created by another node.
	held := len(entry.Value()) > len(nodeID) && string(entry.Value()[:len(nodeID)]) == nodeID
	if !held {
		e.clear()
	}

	return held, nil
}

// Leader returns the node ID currently recorded in the leader key, or ""
// when no leader is elected.
//
// Parameters:
//   - ctx: Context for timeout
//
// Returns:
//   - string: Leader node ID ("" when vacant)
//   - error: Lookup error
func (e *NATSElection) Leader(ctx context.Context) (string, error) {
	entry, err := e.kv.Get(ctx, e.key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("failed to read leader key: %w", err)
	}

	value := string(entry.Value())
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			return value[:i], nil
		}
	}

	return value, nil
}

func (e *NATSElection) state() (bool, string, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.isLeader, e.nodeID, e.revision
}

func (e *NATSElection) set(nodeID string, revision uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.isLeader = true
	e.nodeID = nodeID
	e.revision = revision
}

func (e *NATSElection) clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.isLeader = false
	e.nodeID = ""
	e.revision = 0
}
