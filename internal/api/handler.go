// Package api serves read-only JSON views of the stake registry.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-registry/internal/types"
)

// StakeReader is the read side of the stake registry.
type StakeReader interface {
	OwnIdentity() types.Identity
	GetSummary() types.StakeSummary
	GetOwnStakeInfo() types.OwnStakeInfo
	GetNodeStake(identity types.Identity) (uint64, bool)
	GetAllStakesDesc() []types.IdentityStake
	NodeCount() int
	LastUpdated() time.Time
}

type Handler struct {
	stakes StakeReader
}

// NewRouter registers every route on a chi router.
func NewRouter(stakes StakeReader) *chi.Mux {
	h := &Handler{stakes: stakes}

	r := chi.NewRouter()
	r.Get("/healthcheck", h.healthcheck)
	r.Route("/v1/stakes", func(r chi.Router) {
		r.Get("/", h.listStakes)
		r.Get("/summary", h.summary)
		r.Get("/own", h.ownStake)
		r.Get("/{identity}", h.nodeStake)
	})

	return r
}

func (h *Handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, SummaryResponse{
		StakeSummary: h.stakes.GetSummary(),
		Nodes:        h.stakes.NodeCount(),
		LastUpdated:  h.stakes.LastUpdated(),
	})
}

func (h *Handler) ownStake(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, OwnStakeResponse{
		Identity:     h.stakes.OwnIdentity(),
		OwnStakeInfo: h.stakes.GetOwnStakeInfo(),
	})
}

func (h *Handler) listStakes(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, StakesResponse{Stakes: h.stakes.GetAllStakesDesc()})
}

func (h *Handler) nodeStake(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseIdentity(chi.URLParam(r, "identity"))
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	stake, ok := h.stakes.GetNodeStake(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "identity not found")
		return
	}

	jsonResp(w, http.StatusOK, types.IdentityStake{Identity: id, Stake: stake})
}

func jsonResp(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func jsonErr(w http.ResponseWriter, status int, msg string) {
	jsonResp(w, status, ErrorResponse{Error: msg})
}
