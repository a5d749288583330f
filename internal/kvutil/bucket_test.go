package kvutil

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	natstest "github.com/birchmd/shardassign/testing"
)

func TestEnsureBucket_CreatesBucket(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	kv, err := EnsureBucket(t.Context(), js, jetstream.KeyValueConfig{
		Bucket:  "kvutil-create",
		TTL:     time.Minute,
		Storage: jetstream.MemoryStorage,
	})
	require.NoError(t, err)
	require.NotNil(t, kv)

	_, err = kv.Put(t.Context(), "key", []byte("value"))
	require.NoError(t, err)
}

func TestEnsureBucket_OpensExistingBucket(t *testing.T) {
	_, nc := natstest.StartEmbeddedNATS(t)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	cfg := jetstream.KeyValueConfig{
		Bucket:  "kvutil-existing",
		Storage: jetstream.MemoryStorage,
	}

	first, err := EnsureBucket(t.Context(), js, cfg)
	require.NoError(t, err)
	_, err = first.Put(t.Context(), "key", []byte("value"))
	require.NoError(t, err)

	second, err := EnsureBucket(t.Context(), js, cfg)
	require.NoError(t, err)

	entry, err := second.Get(t.Context(), "key")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), entry.Value())
}
