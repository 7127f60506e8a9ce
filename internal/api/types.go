package api

import (
	"time"

	"github.com/babylonlabs-io/stake-registry/internal/types"
)

type SummaryResponse struct {
	types.StakeSummary
	Nodes       int       `json:"nodes"`
	LastUpdated time.Time `json:"last_updated"`
}

type OwnStakeResponse struct {
	Identity types.Identity `json:"identity"`
	types.OwnStakeInfo
}

type StakesResponse struct {
	Stakes []types.IdentityStake `json:"stakes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
