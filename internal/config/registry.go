package config

import (
	"fmt"

	"github.com/babylonlabs-io/stake-registry/internal/types"
)

type RegistryConfig struct {
	// OwnIdentity is the base58 identity pubkey of the local node.
	OwnIdentity               string `mapstructure:"own-identity"`
	RejectDuplicateIdentities bool   `mapstructure:"reject-duplicate-identities"`
}

func (cfg *RegistryConfig) Validate() error {
	if _, err := cfg.Identity(); err != nil {
		return fmt.Errorf("own-identity: %w", err)
	}
	return nil
}

func (cfg *RegistryConfig) Identity() (types.Identity, error) {
	return types.ParseIdentity(cfg.OwnIdentity)
}
