package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-registry/internal/clients/rpcclient"
	"github.com/babylonlabs-io/stake-registry/internal/config"
	"github.com/babylonlabs-io/stake-registry/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-registry/internal/observability/tracing"
	"github.com/babylonlabs-io/stake-registry/internal/services"
	"github.com/babylonlabs-io/stake-registry/internal/stakes"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the stake poller and the read api",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating stake registry")
	}

	var rpcClient rpcclient.RPCInterface = rpcclient.NewRPCClient(&cfg.RPC)
	rpcClient = rpcclient.NewRPCClientWithMetrics(rpcClient)

	// initialize metrics with the metrics address from config
	metrics.Init(cfg.Metrics.GetMetricsHost(), cfg.Metrics.GetMetricsPort())

	log.Info().
		Str("own_identity", store.OwnIdentity().String()).
		Str("rpc_endpoint", cfg.RPC.Endpoint).
		Msg("Starting stake registry")

	service := services.NewService(cfg, store, rpcClient)
	return service.Start(ctx)
}

func newStore(cfg *config.Config) (*stakes.Store, error) {
	ownIdentity, err := cfg.Registry.Identity()
	if err != nil {
		return nil, err
	}

	var opts []stakes.Option
	if cfg.Registry.RejectDuplicateIdentities {
		opts = append(opts, stakes.WithRejectDuplicates())
	}

	return stakes.NewStore(ownIdentity, opts...), nil
}
