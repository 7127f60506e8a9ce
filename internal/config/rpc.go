package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	defaultRPCTimeout       = 30 * time.Second
	defaultRPCMaxRetryTimes = 5
	defaultRPCRetryInterval = 500 * time.Millisecond
	defaultCommitment       = "finalized"
)

// RPCConfig defines the JSON-RPC endpoint vote accounts are read from.
type RPCConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	Commitment    string        `mapstructure:"commitment"`
}

func (cfg *RPCConfig) Validate() error {
	if cfg.Endpoint == "" {
		return errors.New("rpc endpoint is required")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid rpc endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("rpc endpoint must be http or https, got %q", u.Scheme)
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if cfg.MaxRetryTimes <= 0 {
		return errors.New("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	switch cfg.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid commitment %q", cfg.Commitment)
	}

	return nil
}
