package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testAssignment() *ShardAssignment {
	return &ShardAssignment{
		Version:     3,
		Fingerprint: 0xdeadbeef,
		Shards: [][]Validator{
			{NewValidator("alice", 100), NewValidator("dave", 20)},
			{NewValidator("bob", 30), NewValidator("carol", 30), NewValidator("alice", 100)},
			{},
		},
	}
}

func TestShardAssignmentNumShards(t *testing.T) {
	assert.Equal(t, 3, testAssignment().NumShards())
	assert.Equal(t, 0, (&ShardAssignment{}).NumShards())
}

func TestShardAssignmentTotalSlots(t *testing.T) {
	// alice occupies two shards and counts once per shard.
	assert.Equal(t, 5, testAssignment().TotalSlots())
}

func TestShardAssignmentShardStake(t *testing.T) {
	a := testAssignment()

	assert.Equal(t, uint64(120), a.ShardStake(0).Uint64())
	assert.Equal(t, uint64(160), a.ShardStake(1).Uint64())
	assert.True(t, a.ShardStake(2).IsZero(), "empty shard has zero stake")
	assert.True(t, a.ShardStake(-1).IsZero(), "out-of-range shard has zero stake")
	assert.True(t, a.ShardStake(3).IsZero(), "out-of-range shard has zero stake")
}

func TestShardAssignmentShardsFor(t *testing.T) {
	a := testAssignment()

	assert.Equal(t, []int{0, 1}, a.ShardsFor("alice"))
	assert.Equal(t, []int{1}, a.ShardsFor("bob"))
	assert.Empty(t, a.ShardsFor("mallory"))
}
