package source

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birchmd/shardassign/types"
)

func TestStatic_ListValidators(t *testing.T) {
	validators := []types.Validator{
		types.NewValidator("alice", 100),
		types.NewValidator("bob", 90),
	}

	src := NewStatic(validators)

	listed, err := src.ListValidators(t.Context())
	require.NoError(t, err)
	require.Equal(t, validators, listed)

	// The returned slice is a copy; mutating it must not affect the source.
	listed[0] = types.NewValidator("mallory", 1)
	again, err := src.ListValidators(t.Context())
	require.NoError(t, err)
	require.Equal(t, "alice", again[0].ID)
}

func TestStatic_Update(t *testing.T) {
	src := NewStatic([]types.Validator{types.NewValidator("alice", 100)})

	next := []types.Validator{
		types.NewValidator("alice", 100),
		types.NewValidator("carol", 70),
	}
	src.Update(next)

	listed, err := src.ListValidators(t.Context())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "carol", listed[1].ID)
}
