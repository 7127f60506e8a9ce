package rpcclient

import (
	"context"
	"time"

	"github.com/babylonlabs-io/stake-registry/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-registry/internal/types"
)

type rpcClientWithMetrics struct {
	rpc RPCInterface
}

func NewRPCClientWithMetrics(rpc RPCInterface) *rpcClientWithMetrics {
	return &rpcClientWithMetrics{rpc: rpc}
}

func (r *rpcClientWithMetrics) GetVoteAccounts(ctx context.Context) (*types.VoteAccountStatus, error) {
	return runRPCClientMethodWithMetrics("GetVoteAccounts", func() (*types.VoteAccountStatus, error) {
		return r.rpc.GetVoteAccounts(ctx)
	})
}

func runRPCClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordRPCClientLatency(duration, method, err != nil)
	return v, err
}
