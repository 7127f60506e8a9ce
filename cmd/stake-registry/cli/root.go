package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-registry/pkg"
)

const (
	defaultConfigFileName = "config.yml"
	configPathEnv         = "STAKE_REGISTRY_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:          "stake-registry",
		Short:        "Keeps an in-memory snapshot of validator stakes",
		SilenceUsage: true,
	}
)

func Setup(ctx context.Context) error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(DumpStakesCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
