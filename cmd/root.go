package cmd

import (
	"fmt"
	"os"

	"nb-init/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "nb-init",
	Short: "Declarative NetBox seeder",
	Long: `nb-init reads YAML documents describing NetBox objects and creates the ones
that are missing, in dependency order. Running it twice changes nothing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configPath is the directory holding nb-init.yaml and .env.
var configPath string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing nb-init.yaml and .env")
}
