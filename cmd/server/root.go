package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"recruit/internal/platform/config"
	"recruit/internal/platform/logger"
	"recruit/internal/platform/migrations"
)

const serviceName = "recruit"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Recruitment form bot: collects applications and routes them to moderators",
		Long:          "recruit runs a Telegram bot that walks applicants through a form, posts each submission to a moderation chat and delivers the moderators' decision.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newStatsCmd(),
	)

	return rootCmd
}

// loadConfig reads the environment and builds the process logger.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	migrations.SetLogger(appLogger)
	return cfg, appLogger, nil
}
