package election

import (
	"testing"

	"github.com/stretchr/testify/require"

	natstest "github.com/birchmd/shardassign/testing"
)

func TestNATSElection_AcquireAndRenew(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "election-acquire")

	agent := NewNATSElection(kv, "leader")

	acquired, err := agent.RequestLeadership(t.Context(), "node-0", 30)
	require.NoError(t, err)
	require.True(t, acquired)

	isLeader, err := agent.IsLeader(t.Context())
	require.NoError(t, err)
	require.True(t, isLeader)

	require.NoError(t, agent.RenewLeadership(t.Context()))

	// Renewal through RequestLeadership also succeeds while leading.
	acquired, err = agent.RequestLeadership(t.Context(), "node-0", 30)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestNATSElection_OnlyOneLeader(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "election-race")

	first := NewNATSElection(kv, "leader")
	second := NewNATSElection(kv, "leader")

	acquired, err := first.RequestLeadership(t.Context(), "node-0", 30)
	require.NoError(t, err)
	require.True(t, acquired)

	acquired, err = second.RequestLeadership(t.Context(), "node-1", 30)
	require.NoError(t, err)
	require.False(t, acquired, "second node must not win while the lease is held")

	leader, err := second.Leader(t.Context())
	require.NoError(t, err)
	require.Equal(t, "node-0", leader)
}

func TestNATSElection_ReleaseAllowsTakeover(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "election-release")

	first := NewNATSElection(kv, "leader")
	second := NewNATSElection(kv, "leader")

	acquired, err := first.RequestLeadership(t.Context(), "node-0", 30)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, first.ReleaseLeadership(t.Context()))

	isLeader, err := first.IsLeader(t.Context())
	require.NoError(t, err)
	require.False(t, isLeader)

	acquired, err = second.RequestLeadership(t.Context(), "node-1", 30)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestNATSElection_RenewWithoutLeadership(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "election-renew")

	agent := NewNATSElection(kv, "leader")

	require.ErrorIs(t, agent.RenewLeadership(t.Context()), ErrNotLeader)
	require.ErrorIs(t, agent.ReleaseLeadership(t.Context()), ErrNotLeader)
}

func TestNATSElection_ReclaimsOwnKeyAfterFailedRenewal(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "election-reclaim")

	agent := NewNATSElection(kv, "leader")

	acquired, err := agent.RequestLeadership(t.Context(), "node-0", 30)
	require.NoError(t, err)
	require.True(t, acquired)

	// A write outside the agent bumps the revision, so the next renewal
	// fails even though the key still names this node.
	_, err = kv.Put(t.Context(), "leader", []byte("node-0:0"))
	require.NoError(t, err)

	require.ErrorIs(t, agent.RenewLeadership(t.Context()), ErrLeadershipLost)

	// The node must not be locked out of leadership by its own live key.
	acquired, err = agent.RequestLeadership(t.Context(), "node-0", 30)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, agent.RenewLeadership(t.Context()))
}

func TestNATSElection_InvalidLease(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "election-lease")

	agent := NewNATSElection(kv, "leader")

	_, err := agent.RequestLeadership(t.Context(), "node-0", 0)
	require.ErrorIs(t, err, ErrInvalidDuration)
}
