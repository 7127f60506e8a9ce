// Package stakes keeps the latest validator stake distribution in memory and
// serves lookups against it.
package stakes

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-registry/internal/types"
)

// Store holds one stake snapshot for the local node. Updates replace the
// snapshot wholesale; readers always get copies.
type Store struct {
	ownIdentity      types.Identity
	rejectDuplicates bool
	now              func() time.Time

	mu   sync.RWMutex
	data *snapshot
}

type Option func(*Store)

// WithRejectDuplicates makes Update reject reports that name an identity more
// than once instead of keeping the last occurrence in the map.
func WithRejectDuplicates() Option {
	return func(s *Store) {
		s.rejectDuplicates = true
	}
}

// WithClock overrides the clock used to stamp updates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(ownIdentity types.Identity, opts ...Option) *Store {
	s := &Store{
		ownIdentity: ownIdentity,
		now:         time.Now,
		data:        emptySnapshot(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) OwnIdentity() types.Identity {
	return s.ownIdentity
}

func (s *Store) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *Store) GetSummary() types.StakeSummary {
	return s.current().summary
}

// GetOwnStakeInfo returns the stake of the local node. A node missing from
// the snapshot gets the zero value, which is classified as unstaked. A node
// present with zero stake is still staked.
func (s *Store) GetOwnStakeInfo() types.OwnStakeInfo {
	snap := s.current()

	stake, ok := snap.identityToStake[s.ownIdentity]
	if !ok {
		return types.OwnStakeInfo{}
	}

	return types.OwnStakeInfo{
		PeerType:    types.PeerTypeStaked,
		Stakes:      stake,
		TotalStakes: snap.summary.TotalStakes,
		MinStakes:   snap.summary.MinStakes,
		MaxStakes:   snap.summary.MaxStakes,
	}
}

func (s *Store) GetNodeStake(identity types.Identity) (uint64, bool) {
	stake, ok := s.current().identityToStake[identity]
	return stake, ok
}

func (s *Store) GetStakePerNode() map[types.Identity]uint64 {
	return maps.Clone(s.current().identityToStake)
}

func (s *Store) GetAllStakesDesc() []types.IdentityStake {
	return slices.Clone(s.current().stakesDesc)
}

// NodeCount returns the number of distinct identities in the snapshot.
func (s *Store) NodeCount() int {
	return len(s.current().identityToStake)
}

// LastUpdated is zero until the first accepted report.
func (s *Store) LastUpdated() time.Time {
	return s.current().updatedAt
}

// Update replaces the snapshot with one built from report. A report that
// cannot be parsed is dropped and the previous snapshot stays visible; the
// returned error is informational only.
func (s *Store) Update(ctx context.Context, report types.VoteAccountStatus) error {
	log := ctxLogger(ctx)

	next, err := buildSnapshot(report, s.rejectDuplicates)
	if err != nil {
		log.Warn().
			Err(err).
			Int("current", len(report.Current)).
			Int("delinquent", len(report.Delinquent)).
			Msg("rpc vote account result rejected, keeping previous stakes")
		return err
	}
	next.updatedAt = s.now()

	s.mu.Lock()
	s.data = next
	s.mu.Unlock()

	log.Debug().
		Int("nodes", len(next.identityToStake)).
		Uint64("total_stakes", next.summary.TotalStakes).
		Msg("stakes updated")

	return nil
}

// ctxLogger returns the logger carried by ctx, or the global logger when ctx
// has none, so rejections are never dropped.
func ctxLogger(ctx context.Context) *zerolog.Logger {
	logger := log.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return logger
}
