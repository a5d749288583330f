package types

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator("alice", 100)

	assert.Equal(t, "alice", v.ID)
	require.NotNil(t, v.Stake)
	assert.Equal(t, uint64(100), v.Stake.Uint64())
}

func TestValidatorStakeOrZero(t *testing.T) {
	t.Run("NilStake", func(t *testing.T) {
		v := Validator{ID: "alice"}
		assert.True(t, v.StakeOrZero().IsZero())
	})

	t.Run("SetStake", func(t *testing.T) {
		v := NewValidator("alice", 42)
		assert.Equal(t, uint64(42), v.StakeOrZero().Uint64())
	})
}

func TestValidatorEqual(t *testing.T) {
	a := NewValidator("alice", 100)
	b := NewValidator("alice", 999)
	c := NewValidator("bob", 100)

	assert.True(t, a.Equal(b), "same ID with different stake is the same validator")
	assert.False(t, a.Equal(c))
}

func TestValidatorJSONRoundTrip(t *testing.T) {
	// Stakes wider than 64 bits must survive the wire format.
	wide := new(uint256.Int).Lsh(uint256.NewInt(1), 130)
	v := Validator{ID: "alice", Stake: wide}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded Validator
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "alice", decoded.ID)
	require.NotNil(t, decoded.Stake)
	assert.Zero(t, decoded.Stake.Cmp(wide))
}
