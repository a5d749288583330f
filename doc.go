// Package shardassign provides a Go library for stake-weighted assignment
// of validators (block producers) to shards, with optional NATS-based
// distribution of the resulting assignment across a cluster.
//
// The core of the library is a deterministic, stateless assignment
// algorithm that guarantees every shard a minimum quota of distinct
// validators and then balances total stake between shards. Around it, a
// Manager handles leader election, validator set discovery, and atomic
// publication of versioned assignments over NATS JetStream.
//
// # Quick Start
//
// The algorithm can be used directly, with no infrastructure at all:
//
//	import "github.com/birchmd/shardassign/strategy"
//
//	sw := strategy.NewStakeWeighted()
//	shards, err := sw.Assign(validators, numShards, minValidatorsPerShard)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// shards[i] holds the validators assigned to shard i
//
// Or run coordinated across a cluster:
//
//	cfg := shardassign.Config{
//	    ClusterID:             "testnet",
//	    NodeID:                "node-3",
//	    NumShards:             4,
//	    MinValidatorsPerShard: 2,
//	}
//
//	src := source.NewStatic(validators)
//	mgr, err := shardassign.NewManager(&cfg, natsConn, src, strategy.NewStakeWeighted())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := mgr.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Stop(context.Background())
//
// # Key Features
//
//   - Quota Guarantee: Every shard receives at least the configured number
//     of distinct validators, cycling the set when supply is short
//   - Stake Balancing: Surplus validators are placed to minimize per-shard
//     stake imbalance
//   - Deterministic: The same validator set always yields the same
//     assignment, so every node can verify the leader's output
//   - Leader-Based Distribution: One node calculates; all nodes observe the
//     same versioned assignment via NATS KV
//   - Liveness Filter: Optionally exclude nodes without a recent heartbeat
//     from assignment
//
// # Architecture
//
// The leader node periodically lists validators from the configured
// ValidatorSource, fingerprints the set, and recomputes the assignment
// only when the set changes. Assignments are published atomically to a
// JetStream KV bucket; every node (leader included) applies them from the
// same watch stream, triggering hooks and subscriber callbacks.
//
// # Advanced Usage
//
// Custom strategy with options:
//
//	import (
//	    "github.com/birchmd/shardassign"
//	    "github.com/birchmd/shardassign/strategy"
//	)
//
//	sw := strategy.NewStakeWeighted(
//	    strategy.WithStakeWeightedLogger(myLogger),
//	)
//
//	hooks := &shardassign.Hooks{
//	    OnAssignmentChanged: func(ctx context.Context, prev, next *shardassign.ShardAssignment) error {
//	        // React to shard membership changes
//	        return nil
//	    },
//	}
//
//	mgr, err := shardassign.NewManager(&cfg, natsConn, src, sw,
//	    shardassign.WithHooks(hooks),
//	)
package shardassign
