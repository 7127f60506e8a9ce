package config

import (
	"fmt"
)

const (
	defaultMetricsHost = "0.0.0.0"
	defaultMetricsPort = 2112
	defaultAPIHost     = "0.0.0.0"
	defaultAPIPort     = 8080
)

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	return validatePort(cfg.Port)
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}

func (cfg *MetricsConfig) GetMetricsHost() string {
	return cfg.Host
}

type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *APIConfig) Validate() error {
	return validatePort(cfg.Port)
}

func (cfg *APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

func validatePort(port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("port %d out of range", port)
	}
	return nil
}
