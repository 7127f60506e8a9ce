package services

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/babylonlabs-io/stake-registry/internal/api"
	"github.com/babylonlabs-io/stake-registry/internal/clients/rpcclient"
	"github.com/babylonlabs-io/stake-registry/internal/config"
	"github.com/babylonlabs-io/stake-registry/internal/stakes"
)

type Service struct {
	cfg    *config.Config
	stakes *stakes.Store
	rpc    rpcclient.RPCInterface
}

func NewService(
	cfg *config.Config,
	store *stakes.Store,
	rpc rpcclient.RPCInterface,
) *Service {
	return &Service{
		cfg:    cfg,
		stakes: store,
		rpc:    rpc,
	}
}

// Start runs the stakes poller and the read api until ctx is cancelled or
// the api server fails.
func (s *Service) Start(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		s.StartStakesPoller(ctx)
		return nil
	})

	apiServer := api.NewServer(s.cfg.API.Addr(), s.stakes)
	p.Go(apiServer.Run)

	return p.Wait()
}
