package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundRobin_Assign(t *testing.T) {
	t.Run("distributes validators evenly across shards", func(t *testing.T) {
		validators := makeValidators([]uint64{9, 8, 7, 6, 5, 4, 3, 2, 1})

		shards, err := NewRoundRobin().Assign(validators, 3, 0)
		require.NoError(t, err)
		requireWellFormed(t, shards, len(validators), 3, 0)

		for _, shard := range shards {
			require.Len(t, shard, 3)
		}
	})

	t.Run("fills quotas by cycling the validator set", func(t *testing.T) {
		validators := makeValidators([]uint64{10, 20, 30})

		shards, err := NewRoundRobin().Assign(validators, 4, 2)
		require.NoError(t, err)
		requireWellFormed(t, shards, len(validators), 4, 2)
	})

	t.Run("ignores stake entirely", func(t *testing.T) {
		// The dominant validator gets no special treatment.
		validators := makeValidators([]uint64{1000, 1, 1, 1})

		shards, err := NewRoundRobin().Assign(validators, 2, 0)
		require.NoError(t, err)
		require.Len(t, shards[0], 2)
		require.Len(t, shards[1], 2)
	})

	t.Run("returns error for insufficient validators", func(t *testing.T) {
		validators := makeValidators([]uint64{100})

		_, err := NewRoundRobin().Assign(validators, 1, 3)
		require.ErrorIs(t, err, ErrInsufficientValidators)
	})

	t.Run("returns error for non-positive shard count", func(t *testing.T) {
		validators := makeValidators([]uint64{100})

		_, err := NewRoundRobin().Assign(validators, 0, 0)
		require.ErrorIs(t, err, ErrInvalidShardCount)
	})
}
