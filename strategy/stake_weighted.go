package strategy

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/birchmd/shardassign/internal/heap"
	"github.com/birchmd/shardassign/internal/logging"
	"github.com/birchmd/shardassign/types"
)

// StakeWeighted implements quota-first, stake-balanced shard assignment.
//
// The algorithm runs in two phases over a min-heap of per-shard seats:
//
//  1. Quota phase: seats are ordered by (validator count, stake, shard ID)
//     so the least-filled shard is always served next. Validators are drawn
//     cyclically from the input set until every shard holds at least the
//     minimum quota. A placement never targets a shard that already
//     contains the validator or has already reached the quota; a draw with
//     no eligible shard is passed over for the next validator in the cycle.
//  2. Balance phase: remaining validators are assigned with seats
//     re-ordered by (stake, validator count, shard ID), so each goes to the
//     shard with the least total stake.
//
// Quota comes first because an under-filled shard is a structural failure
// for the consumer, while stake imbalance is only a fairness concern.
type StakeWeighted struct {
	logger types.Logger
}

var _ types.AssignmentStrategy = (*StakeWeighted)(nil)

// StakeWeightedOption configures a StakeWeighted strategy.
type StakeWeightedOption func(*StakeWeighted)

// NewStakeWeighted creates a new stake-weighted assignment strategy.
//
// Parameters:
//   - opts: Optional configuration (WithStakeWeightedLogger)
//
// Returns:
//   - *StakeWeighted: Initialized strategy ready for use
//
// Example:
//
//	strategy := strategy.NewStakeWeighted()
//	shards, err := strategy.Assign(validators, 4, 2)
func NewStakeWeighted(opts ...StakeWeightedOption) *StakeWeighted {
	sw := &StakeWeighted{
		logger: logging.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sw)
		}
	}

	return sw
}

// WithStakeWeightedLogger sets the logger used for debug diagnostics.
func WithStakeWeightedLogger(logger types.Logger) StakeWeightedOption {
	return func(sw *StakeWeighted) {
		sw.logger = logger
	}
}

// shardSeat tracks one shard's occupancy while assignment is in progress.
// Seats are transient heap entries; ordering is component-wise with the
// shard ID as the unique, least-significant tie-breaker, which keeps pop
// order fully deterministic.
type shardSeat struct {
	count int
	stake *uint256.Int
	shard int
}

// quotaOrder favours filling under-occupied shards first.
func quotaOrder(a, b shardSeat) bool {
	if a.count != b.count {
		return a.count < b.count
	}
	if c := a.stake.Cmp(b.stake); c != 0 {
		return c < 0
	}

	return a.shard < b.shard
}

// balanceOrder favours the shard with the least total stake.
func balanceOrder(a, b shardSeat) bool {
	if c := a.stake.Cmp(b.stake); c != 0 {
		return c < 0
	}
	if a.count != b.count {
		return a.count < b.count
	}

	return a.shard < b.shard
}

// Assign distributes validators across shards, guaranteeing every shard at
// least minValidatorsPerShard distinct validators and then balancing total
// stake.
//
// Validator order matters: it determines cycling order when the set must
// be reused to satisfy quotas, and which validator reaches the heap first
// on ties. Validator IDs must be distinct; the quota phase relies on at
// least minValidatorsPerShard distinct identities existing, and only the
// set's length is checked. Duplicate identities make quota progress
// impossible at some point and trigger a panic rather than a silent
// violation.
//
// The call is pure: no state survives it, and concurrent calls with
// different inputs need no coordination.
//
// Parameters:
//   - validators: Ordered validator set
//   - numShards: Number of shards to fill (> 0)
//   - minValidatorsPerShard: Minimum distinct validators per shard (>= 0)
//
// Returns:
//   - [][]types.Validator: Per-shard validator lists, outer index == shard ID
//   - error: ErrInvalidShardCount or ErrInsufficientValidators; on error no
//     partial assignment is produced
func (sw *StakeWeighted) Assign(validators []types.Validator, numShards, minValidatorsPerShard int) ([][]types.Validator, error) {
	if numShards <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, numShards)
	}

	numValidators := len(validators)
	if numValidators < minValidatorsPerShard {
		return nil, fmt.Errorf("%w: %d validators for a quota of %d",
			ErrInsufficientValidators, numValidators, minValidatorsPerShard)
	}

	// Exactly required placements are made in total, drawn from the
	// validator set repeating from the start once exhausted. Draws below
	// numValidators are the first pass, where duplicates are impossible.
	required := max(numValidators, numShards*minValidatorsPerShard)

	seats := make([]shardSeat, numShards)
	for i := range seats {
		seats[i] = shardSeat{stake: uint256.NewInt(0), shard: i}
	}
	pq := heap.Build(seats, quotaOrder)

	shards := make([][]types.Validator, numShards)
	for i := range shards {
		shards[i] = []types.Validator{}
	}

	// Quota phase: place validators while some shard is still below the
	// minimum. The heap always surfaces the globally least-filled shard,
	// so when its count reaches the quota every shard has reached it.
	// Every placement goes to an under-quota shard; a draw whose validator
	// already occupies all under-quota shards is passed over, so the supply
	// index can run past required while the placement count never does.
	slot := 0
	stalled := 0
	for {
		seat, ok := pq.Peek()
		if !ok {
			panic("shardassign: shard heap empty during quota phase")
		}
		if seat.count >= minValidatorsPerShard {
			break
		}
		if stalled >= numValidators {
			panic("shardassign: full cycle without a placeable validator; validator IDs must be distinct")
		}

		v := validators[slot%numValidators]
		placed := false

		switch {
		case slot < numValidators:
			// First pass through the set; v is not in any shard yet.
			seat, _ = pq.Pop()
			placeValidator(pq, shards, seat, v)
			placed = true
		case containsID(shards[seat.shard], v.ID):
			// v already occupies the least-filled shard. Pop seats aside
			// until an under-quota shard without v turns up, place v there,
			// then restore the merely inspected seats unchanged. Seats pop
			// in ascending count order, so the scan stops at the first seat
			// already at quota: placing v there would burn the draw on a
			// shard that needs nothing while an under-quota shard waits.
			// When every under-quota shard holds v, the draw is passed over
			// and the next validator in the cycle is tried instead.
			seat, _ = pq.Pop()
			buffered := []shardSeat{seat}
			for {
				candidate, ok := pq.Pop()
				if !ok || candidate.count >= minValidatorsPerShard {
					if ok {
						buffered = append(buffered, candidate)
					}
					break
				}
				if containsID(shards[candidate.shard], v.ID) {
					buffered = append(buffered, candidate)
					continue
				}
				placeValidator(pq, shards, candidate, v)
				placed = true
				break
			}
			for _, b := range buffered {
				pq.Push(b)
			}
		default:
			// Repeat pass, but this particular shard does not hold v.
			seat, _ = pq.Pop()
			placeValidator(pq, shards, seat, v)
			placed = true
		}

		if placed {
			stalled = 0
		} else {
			stalled++
		}
		slot++
	}

	// Balance phase: only reached when true surplus remains beyond the
	// quotas (required == numValidators > numShards*minValidatorsPerShard),
	// so the remainder is a single pass with no duplication risk. Re-key
	// the same seats so stake becomes the primary sort key.
	if slot < required {
		pq = heap.Build(pq.Drain(), balanceOrder)

		for ; slot < required; slot++ {
			v := validators[slot%numValidators]
			seat, ok := pq.Pop()
			if !ok {
				panic("shardassign: shard heap empty during balance phase")
			}
			placeValidator(pq, shards, seat, v)
		}
	}

	sw.logger.Debug("stake-weighted assignment complete",
		"validators", numValidators,
		"shards", numShards,
		"min_per_shard", minValidatorsPerShard,
		"slots", required,
	)

	return shards, nil
}

// placeValidator assigns v to the shard behind seat and pushes the seat's
// successor entry back onto the heap.
func placeValidator(pq *heap.Heap[shardSeat], shards [][]types.Validator, seat shardSeat, v types.Validator) {
	pq.Push(shardSeat{
		count: seat.count + 1,
		stake: new(uint256.Int).Add(seat.stake, v.StakeOrZero()),
		shard: seat.shard,
	})
	shards[seat.shard] = append(shards[seat.shard], v)
}

// containsID reports whether the shard already holds a validator with the
// given identity.
func containsID(shard []types.Validator, id string) bool {
	for _, v := range shard {
		if v.ID == id {
			return true
		}
	}

	return false
}
