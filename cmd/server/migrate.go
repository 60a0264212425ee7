package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recruit/internal/platform/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured storage driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if st.db == nil {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "storage driver %q has no schema\n", cfg.StorageDriver)
				return err
			}
			version, err := migrations.Version(cmd.Context(), st.db, st.dialect)
			if err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "migrations applied", "driver", cfg.StorageDriver, "version", version)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", cfg.StorageDriver, version)
			return err
		},
	}
}
