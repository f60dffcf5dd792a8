package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dosada05/pelada/config"
	"github.com/Dosada05/pelada/services"
)

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Write the default roster into the configured store",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := newLogger(cfg.LogLevel)

			repo, closeRepo, err := openPlayerRepository(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			n, err := services.NewPlayerService(repo, nil, logger).Seed(ctx, force)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Roster already has players; use --force to overwrite them")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %d players into the %s store\n", n, cfg.StorageDriver)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Upsert the default roster even when players exist")

	return cmd
}
