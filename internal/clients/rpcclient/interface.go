package rpcclient

import (
	"context"

	"github.com/babylonlabs-io/stake-registry/internal/types"
)

type RPCInterface interface {
	GetVoteAccounts(ctx context.Context) (*types.VoteAccountStatus, error)
}
