package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-registry/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-registry/internal/utils/poller"
)

// StartStakesPoller refreshes the stake registry on the configured interval.
// It blocks until ctx is cancelled.
func (s *Service) StartStakesPoller(ctx context.Context) {
	stakesPoller := poller.NewPoller(
		"stakes",
		s.cfg.Poller.StakesPollingInterval,
		metrics.RecordPollerDuration("stakes", s.refreshStakes),
	)
	stakesPoller.Start(ctx)
}

// refreshStakes fetches vote accounts and installs them in the registry. A
// report the registry rejects is already logged there and is not treated as
// a poll failure.
func (s *Service) refreshStakes(ctx context.Context) error {
	log := log.Ctx(ctx)

	report, err := s.rpc.GetVoteAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch vote accounts: %w", err)
	}

	if err := s.stakes.Update(ctx, *report); err != nil {
		metrics.RecordStakeUpdate(true)
		return nil
	}
	metrics.RecordStakeUpdate(false)

	summary := s.stakes.GetSummary()
	own := s.stakes.GetOwnStakeInfo()
	nodes := s.stakes.NodeCount()
	metrics.RecordStakeSnapshot(summary.TotalStakes, nodes, own.Stakes, own.IsStaked())

	log.Info().
		Int("nodes", nodes).
		Uint64("total_stakes", summary.TotalStakes).
		Uint64("min_stakes", summary.MinStakes).
		Uint64("max_stakes", summary.MaxStakes).
		Str("own_peer_type", own.PeerType.String()).
		Uint64("own_stakes", own.Stakes).
		Msg("Updated stakes")

	return nil
}
