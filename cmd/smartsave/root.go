package main

import (
	"github.com/spf13/cobra"

	"smartsave-go/internal/config"
	"smartsave-go/pkg/logger"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "smartsave",
	Short:        "Micro-savings goal tracker",
	Long:         "SmartSave tracks savings goals with streaks, badges, nudges and projections.",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "TOML config file (default $SMARTSAVE_CONFIG)")
}

// loadConfig is shared by every command.
func loadConfig() (config.Config, logger.Logger, error) {
	log := logger.NewFromEnv()
	cfg, err := config.Load(log, flagConfig)
	if err != nil {
		log.Critical("config: load failed", "err", err)
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
