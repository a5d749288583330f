package heartbeat

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	natstest "github.com/birchmd/shardassign/testing"
)

func TestPublisher_StartPublishesImmediately(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "hb-start")

	p := New(kv, "node-hb", "node-0", 50*time.Millisecond)
	require.NoError(t, p.Start(t.Context()))
	defer func() { _ = p.Stop() }()

	require.True(t, p.IsStarted())
	require.Equal(t, "node-0", p.NodeID())

	entry, err := kv.Get(t.Context(), Key("node-hb", "node-0"))
	require.NoError(t, err)
	require.NotEmpty(t, entry.Value())
}

func TestPublisher_StartTwiceFails(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "hb-twice")

	p := New(kv, "node-hb", "node-0", 50*time.Millisecond)
	require.NoError(t, p.Start(t.Context()))
	defer func() { _ = p.Stop() }()

	require.ErrorIs(t, p.Start(t.Context()), ErrAlreadyStarted)
}

func TestPublisher_EmptyNodeID(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "hb-noid")

	p := New(kv, "node-hb", "", 50*time.Millisecond)
	require.ErrorIs(t, p.Start(t.Context()), ErrNoNodeID)
}

func TestPublisher_StopDeletesEntry(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "hb-stop")

	p := New(kv, "node-hb", "node-0", 50*time.Millisecond)
	require.NoError(t, p.Start(t.Context()))
	require.NoError(t, p.Stop())

	require.False(t, p.IsStarted())
	require.ErrorIs(t, p.Stop(), ErrNotStarted)

	_, err := kv.Get(t.Context(), Key("node-hb", "node-0"))
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)
}

func TestPublisher_Restart(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "hb-restart")

	p := New(kv, "node-hb", "node-0", 20*time.Millisecond)
	require.NoError(t, p.Start(t.Context()))
	require.NoError(t, p.Stop())

	// A stopped publisher must come back up cleanly and resume beating.
	require.NoError(t, p.Start(t.Context()))
	defer func() { _ = p.Stop() }()

	require.True(t, p.IsStarted())

	entry, err := kv.Get(t.Context(), Key("node-hb", "node-0"))
	require.NoError(t, err)
	first := entry.Revision()

	require.Eventually(t, func() bool {
		entry, err := kv.Get(t.Context(), Key("node-hb", "node-0"))
		return err == nil && entry.Revision() > first
	}, 2*time.Second, 10*time.Millisecond, "restarted publisher must keep renewing the entry")
}

func TestListActive(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	kv := natstest.CreateJetStreamKV(t, nc, "hb-active")

	active, err := ListActive(t.Context(), kv, "node-hb")
	require.NoError(t, err)
	require.Empty(t, active)

	for _, nodeID := range []string{"node-0", "node-1"} {
		p := New(kv, "node-hb", nodeID, time.Second)
		require.NoError(t, p.Start(t.Context()))
		defer func() { _ = p.Stop() }()
	}

	// An unrelated key must not show up as a node.
	_, err = kv.Put(t.Context(), "other.key", []byte("x"))
	require.NoError(t, err)

	active, err = ListActive(t.Context(), kv, "node-hb")
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Contains(t, active, "node-0")
	require.Contains(t, active, "node-1")
}
