package config

import (
	"time"
)

const defaultStakesPollingInterval = 60 * time.Second

type PollerConfig struct {
	StakesPollingInterval time.Duration `mapstructure:"stakes-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.StakesPollingInterval <= 0 {
		cfg.StakesPollingInterval = defaultStakesPollingInterval
	}

	return nil
}
