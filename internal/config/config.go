package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "STAKE_REGISTRY"

type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	RPC      RPCConfig      `mapstructure:"rpc"`
	Poller   PollerConfig   `mapstructure:"poller"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	API      APIConfig      `mapstructure:"api"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Registry.Validate(); err != nil {
		return fmt.Errorf("invalid registry config: %w", err)
	}
	if err := cfg.RPC.Validate(); err != nil {
		return fmt.Errorf("invalid rpc config: %w", err)
	}
	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("invalid poller config: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}
	if err := cfg.API.Validate(); err != nil {
		return fmt.Errorf("invalid api config: %w", err)
	}

	return nil
}

// New loads the yaml config at cfgFile. Any key can be overridden from the
// environment, e.g. STAKE_REGISTRY_RPC_ENDPOINT.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// keys without a useful default are still declared so env overrides apply
	v.SetDefault("registry.own-identity", "")
	v.SetDefault("registry.reject-duplicate-identities", false)
	v.SetDefault("rpc.endpoint", "")
	v.SetDefault("rpc.timeout", defaultRPCTimeout)
	v.SetDefault("rpc.max-retry-times", defaultRPCMaxRetryTimes)
	v.SetDefault("rpc.retry-interval", defaultRPCRetryInterval)
	v.SetDefault("rpc.commitment", defaultCommitment)
	v.SetDefault("poller.stakes-polling-interval", defaultStakesPollingInterval)
	v.SetDefault("metrics.host", defaultMetricsHost)
	v.SetDefault("metrics.port", defaultMetricsPort)
	v.SetDefault("api.host", defaultAPIHost)
	v.SetDefault("api.port", defaultAPIPort)
}
