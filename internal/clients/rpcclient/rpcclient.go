package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-registry/internal/config"
	"github.com/babylonlabs-io/stake-registry/internal/types"
)

const (
	jsonRPCVersion        = "2.0"
	methodGetVoteAccounts = "getVoteAccounts"
)

// JSON-RPC error codes that will not go away on retry
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type RPCClient struct {
	httpClient *http.Client
	cfg        *config.RPCConfig
	requestID  atomic.Uint64
}

func NewRPCClient(cfg *config.RPCConfig) *RPCClient {
	return &RPCClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type response[T any] struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      uint64    `json:"id"`
	Result  *T        `json:"result"`
	Error   *RPCError `json:"error"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type commitmentConfig struct {
	Commitment string `json:"commitment,omitempty"`
}

// GetVoteAccounts fetches the current and delinquent vote accounts.
func (c *RPCClient) GetVoteAccounts(ctx context.Context) (*types.VoteAccountStatus, error) {
	callForVoteAccounts := func() (*types.VoteAccountStatus, error) {
		return call[types.VoteAccountStatus](ctx, c, methodGetVoteAccounts, commitmentConfig{Commitment: c.cfg.Commitment})
	}

	status, err := clientCallWithRetry(ctx, callForVoteAccounts, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote accounts: %w", err)
	}
	return status, nil
}

func call[T any](ctx context.Context, c *RPCClient, method string, params ...any) (*T, error) {
	body, err := json.Marshal(request{
		JSONRPC: jsonRPCVersion,
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// include the start of the body in the error
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %s for %s: %s", resp.Status, method, bytes.TrimSpace(snippet))
	}

	var decoded response[T]
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if decoded.Error != nil {
		switch decoded.Error.Code {
		case codeInvalidRequest, codeMethodNotFound, codeInvalidParams:
			return nil, retry.Unrecoverable(decoded.Error)
		}
		return nil, decoded.Error
	}
	if decoded.Result == nil {
		return nil, fmt.Errorf("empty result for %s", method)
	}

	return decoded.Result, nil
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[*T], cfg *config.RPCConfig,
) (*T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the RPC client")
		}))

	if err != nil {
		return nil, err
	}
	return result, nil
}
