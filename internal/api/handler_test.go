package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/stake-registry/internal/api"
	"github.com/babylonlabs-io/stake-registry/internal/stakes"
	"github.com/babylonlabs-io/stake-registry/internal/types"
	"github.com/babylonlabs-io/stake-registry/testutil"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(v), "body: %s", rr.Body.String())
}

func newStore(t *testing.T) (*stakes.Store, types.Identity, types.Identity) {
	t.Helper()

	own, other := testutil.RandomIdentity(), testutil.RandomIdentity()
	store := stakes.NewStore(own)
	require.NoError(t, store.Update(context.Background(), types.VoteAccountStatus{
		Current:    []types.VoteAccountInfo{testutil.VoteAccount(own, 100)},
		Delinquent: []types.VoteAccountInfo{testutil.VoteAccount(other, 300)},
	}))
	return store, own, other
}

func TestHealthcheck(t *testing.T) {
	store, _, _ := newStore(t)
	rr := get(t, api.NewRouter(store), "/healthcheck")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSummary(t *testing.T) {
	store, _, _ := newStore(t)
	rr := get(t, api.NewRouter(store), "/v1/stakes/summary")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp api.SummaryResponse
	decode(t, rr, &resp)
	assert.Equal(t, types.StakeSummary{TotalStakes: 400, MinStakes: 100, MaxStakes: 300}, resp.StakeSummary)
	assert.Equal(t, 2, resp.Nodes)
	assert.False(t, resp.LastUpdated.IsZero())
}

func TestOwnStake(t *testing.T) {
	t.Run("staked", func(t *testing.T) {
		store, own, _ := newStore(t)
		rr := get(t, api.NewRouter(store), "/v1/stakes/own")
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]any
		decode(t, rr, &body)
		assert.Equal(t, own.String(), body["identity"])
		assert.Equal(t, "staked", body["peer_type"])
		assert.Equal(t, float64(100), body["stakes"])
		assert.Equal(t, float64(400), body["total_stakes"])
	})

	t.Run("unstaked", func(t *testing.T) {
		store := stakes.NewStore(testutil.RandomIdentity())
		rr := get(t, api.NewRouter(store), "/v1/stakes/own")
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]any
		decode(t, rr, &body)
		assert.Equal(t, "unstaked", body["peer_type"])
		assert.Equal(t, float64(0), body["stakes"])
	})
}

func TestListStakes(t *testing.T) {
	store, own, other := newStore(t)
	rr := get(t, api.NewRouter(store), "/v1/stakes")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.StakesResponse
	decode(t, rr, &resp)
	assert.Equal(t, []types.IdentityStake{
		{Identity: other, Stake: 300},
		{Identity: own, Stake: 100},
	}, resp.Stakes)
}

func TestNodeStake(t *testing.T) {
	store, _, other := newStore(t)
	router := api.NewRouter(store)

	t.Run("known", func(t *testing.T) {
		rr := get(t, router, "/v1/stakes/"+other.String())
		require.Equal(t, http.StatusOK, rr.Code)

		var resp types.IdentityStake
		decode(t, rr, &resp)
		assert.Equal(t, other, resp.Identity)
		assert.Equal(t, uint64(300), resp.Stake)
	})

	t.Run("unknown", func(t *testing.T) {
		rr := get(t, router, "/v1/stakes/"+testutil.RandomIdentity().String())
		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp api.ErrorResponse
		decode(t, rr, &resp)
		assert.Equal(t, "identity not found", resp.Error)
	})

	t.Run("malformed", func(t *testing.T) {
		rr := get(t, router, "/v1/stakes/not-a-pubkey")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	store, _, _ := newStore(t)
	server := api.NewServer("127.0.0.1:0", store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
}
