package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/stake-registry/internal/config"
)

const voteAccountsResponse = `{
	"jsonrpc": "2.0",
	"id": 1,
	"result": {
		"current": [
			{
				"commission": 10,
				"epochVoteAccount": true,
				"activatedStake": 42000000000,
				"lastVote": 147,
				"nodePubkey": "B97CCUW3AEZFGy6uUg6zUdnNYvnVq5VG8PUtb2HayTDD",
				"rootSlot": 42,
				"votePubkey": "3ZT31jkAGhUaw8jsy4bTknwBMP8i4Eueh52By4zXcsVw"
			}
		],
		"delinquent": [
			{
				"commission": 100,
				"epochVoteAccount": false,
				"activatedStake": 0,
				"lastVote": 0,
				"nodePubkey": "11111111111111111111111111111111",
				"rootSlot": 0,
				"votePubkey": "11111111111111111111111111111111"
			}
		]
	}
}`

func testConfig(endpoint string, retries uint) *config.RPCConfig {
	return &config.RPCConfig{
		Endpoint:      endpoint,
		Timeout:       5 * time.Second,
		MaxRetryTimes: retries,
		RetryInterval: 10 * time.Millisecond,
		Commitment:    "finalized",
	}
}

func TestGetVoteAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			JSONRPC string           `json:"jsonrpc"`
			Method  string           `json:"method"`
			Params  []map[string]any `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "getVoteAccounts", req.Method)
		if assert.Len(t, req.Params, 1) {
			assert.Equal(t, "finalized", req.Params[0]["commitment"])
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(voteAccountsResponse))
	}))
	defer server.Close()

	client := NewRPCClient(testConfig(server.URL, 1))
	status, err := client.GetVoteAccounts(context.Background())
	require.NoError(t, err)

	require.Len(t, status.Current, 1)
	require.Len(t, status.Delinquent, 1)
	current := status.Current[0]
	assert.Equal(t, "B97CCUW3AEZFGy6uUg6zUdnNYvnVq5VG8PUtb2HayTDD", current.NodePubkey)
	assert.Equal(t, "3ZT31jkAGhUaw8jsy4bTknwBMP8i4Eueh52By4zXcsVw", current.VotePubkey)
	assert.Equal(t, uint64(42000000000), current.ActivatedStake)
	assert.Equal(t, uint8(10), current.Commission)
	assert.True(t, current.EpochVoteAccount)
	assert.Equal(t, uint64(147), current.LastVote)
	assert.Equal(t, uint64(42), current.RootSlot)
	assert.False(t, status.Delinquent[0].EpochVoteAccount)
}

func TestGetVoteAccounts_RetriesOnServerError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(voteAccountsResponse))
	}))
	defer server.Close()

	client := NewRPCClient(testConfig(server.URL, 3))
	status, err := client.GetVoteAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, status.Current, 1)
	assert.Equal(t, int32(3), requests.Load())
}

func TestGetVoteAccounts_ExceedsMaxRetries(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer server.Close()

	client := NewRPCClient(testConfig(server.URL, 2))
	_, err := client.GetVoteAccounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get vote accounts")
	assert.Contains(t, err.Error(), "slow down")
	assert.Equal(t, int32(2), requests.Load())
}

func TestGetVoteAccounts_RPCError(t *testing.T) {
	t.Run("invalid params is not retried", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid params"}}`))
		}))
		defer server.Close()

		client := NewRPCClient(testConfig(server.URL, 3))
		_, err := client.GetVoteAccounts(context.Background())
		require.Error(t, err)

		var rpcErr *RPCError
		require.True(t, errors.As(err, &rpcErr))
		assert.Equal(t, codeInvalidParams, rpcErr.Code)
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("node error is retried", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32005,"message":"Node is behind"}}`))
		}))
		defer server.Close()

		client := NewRPCClient(testConfig(server.URL, 2))
		_, err := client.GetVoteAccounts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Node is behind")
		assert.Equal(t, int32(2), requests.Load())
	})
}

func TestGetVoteAccounts_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1}`))
	}))
	defer server.Close()

	client := NewRPCClient(testConfig(server.URL, 1))
	_, err := client.GetVoteAccounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty result")
}

func TestGetVoteAccounts_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewRPCClient(testConfig(server.URL, 5))
	_, err := client.GetVoteAccounts(ctx)
	require.Error(t, err)
}

func TestRPCClientWithMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(voteAccountsResponse))
	}))
	defer server.Close()

	client := NewRPCClientWithMetrics(NewRPCClient(testConfig(server.URL, 1)))
	status, err := client.GetVoteAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, status.Len())
}
