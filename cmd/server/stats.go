package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	modservice "recruit/internal/moderation/service"
	"recruit/internal/platform/config"
)

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print submission counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.StorageDriver == config.StorageMemory {
				return fmt.Errorf("stats needs a persistent storage driver, got %q", cfg.StorageDriver)
			}
			st, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			svc, err := modservice.New(st.store, modservice.WithLogger(logger))
			if err != nil {
				return err
			}
			counts, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(counts)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "total:    %d\npending:  %d\naccepted: %d\nrejected: %d\n",
				counts.Total, counts.Pending, counts.Accepted, counts.Rejected)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print counts as JSON")
	return cmd
}
