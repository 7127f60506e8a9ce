package stakes

import (
	"math"
	"math/bits"
	"slices"
	"time"

	"github.com/babylonlabs-io/stake-registry/internal/types"
)

// snapshot is the state produced by a single update. It is never modified
// after construction, so readers may copy from it without holding the lock.
type snapshot struct {
	identityToStake map[types.Identity]uint64
	stakesDesc      []types.IdentityStake
	summary         types.StakeSummary
	updatedAt       time.Time
}

func emptySnapshot() *snapshot {
	return &snapshot{
		identityToStake: make(map[types.Identity]uint64),
		stakesDesc:      []types.IdentityStake{},
	}
}

// buildSnapshot parses, ranks and summarises a report. Any bad pubkey fails
// the whole report.
func buildSnapshot(report types.VoteAccountStatus, rejectDuplicates bool) (*snapshot, error) {
	accounts := report.All()

	stakesDesc := make([]types.IdentityStake, 0, len(accounts))
	for i, account := range accounts {
		id, err := types.ParseIdentity(account.NodePubkey)
		if err != nil {
			return nil, &types.InvalidIdentityError{Index: i, Pubkey: account.NodePubkey, Err: err}
		}
		stakesDesc = append(stakesDesc, types.IdentityStake{Identity: id, Stake: account.ActivatedStake})
	}

	// stable: equal stakes keep report order, current before delinquent
	slices.SortStableFunc(stakesDesc, func(a, b types.IdentityStake) int {
		switch {
		case a.Stake > b.Stake:
			return -1
		case a.Stake < b.Stake:
			return 1
		default:
			return 0
		}
	})

	identityToStake := make(map[types.Identity]uint64, len(stakesDesc))
	for _, entry := range stakesDesc {
		if _, seen := identityToStake[entry.Identity]; seen && rejectDuplicates {
			return nil, &types.DuplicateIdentityError{Identity: entry.Identity}
		}
		// last occurrence in ranked order wins
		identityToStake[entry.Identity] = entry.Stake
	}

	return &snapshot{
		identityToStake: identityToStake,
		stakesDesc:      stakesDesc,
		summary:         summarize(identityToStake),
	}, nil
}

func summarize(identityToStake map[types.Identity]uint64) types.StakeSummary {
	var summary types.StakeSummary
	if len(identityToStake) == 0 {
		return summary
	}

	summary.MinStakes = math.MaxUint64
	for _, stake := range identityToStake {
		summary.TotalStakes = saturatingAdd(summary.TotalStakes, stake)
		summary.MinStakes = min(summary.MinStakes, stake)
		summary.MaxStakes = max(summary.MaxStakes, stake)
	}

	return summary
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
