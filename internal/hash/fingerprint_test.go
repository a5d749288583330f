package hash

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birchmd/shardassign/types"
)

func TestFingerprint_StableForSameInput(t *testing.T) {
	validators := []types.Validator{
		types.NewValidator("alice", 100),
		types.NewValidator("bob", 50),
	}

	require.Equal(t, Fingerprint(validators), Fingerprint(validators))
}

func TestFingerprint_SensitiveToOrder(t *testing.T) {
	a := []types.Validator{
		types.NewValidator("alice", 100),
		types.NewValidator("bob", 50),
	}
	b := []types.Validator{
		types.NewValidator("bob", 50),
		types.NewValidator("alice", 100),
	}

	require.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_SensitiveToStake(t *testing.T) {
	a := []types.Validator{types.NewValidator("alice", 100)}
	b := []types.Validator{types.NewValidator("alice", 101)}

	require.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_NilStakeEqualsZeroStake(t *testing.T) {
	a := []types.Validator{{ID: "alice"}}
	b := []types.Validator{types.NewValidator("alice", 0)}

	require.Equal(t, Fingerprint(a), Fingerprint(b))
}
