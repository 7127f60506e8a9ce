package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-registry/internal/clients/rpcclient"
	"github.com/babylonlabs-io/stake-registry/internal/config"
	"github.com/babylonlabs-io/stake-registry/internal/observability/tracing"
	"github.com/babylonlabs-io/stake-registry/internal/types"
)

type dumpOutput struct {
	Own     types.OwnStakeInfo    `json:"own"`
	Summary types.StakeSummary    `json:"summary"`
	Stakes  []types.IdentityStake `json:"stakes"`
}

func DumpStakesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-stakes",
		Short: "Fetches vote accounts once and prints the resulting stake snapshot",
		Args:  cobra.ExactArgs(0),
		RunE:  dumpStakes,
	}

	return cmd
}

func dumpStakes(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return fmt.Errorf("error while loading config file: %w", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	report, err := rpcclient.NewRPCClient(&cfg.RPC).GetVoteAccounts(ctx)
	if err != nil {
		return err
	}
	if err := store.Update(ctx, *report); err != nil {
		return fmt.Errorf("vote accounts rejected: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dumpOutput{
		Own:     store.GetOwnStakeInfo(),
		Summary: store.GetSummary(),
		Stakes:  store.GetAllStakesDesc(),
	})
}
