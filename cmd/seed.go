package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/umalmyha/ledger/internal/config"
	"github.com/umalmyha/ledger/internal/infra"
	"github.com/umalmyha/ledger/internal/seed"
)

var (
	seedCount  int
	seedRandom uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed configured storage with demo customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCount < 1 {
			return fmt.Errorf("count must be positive, got %d", seedCount)
		}

		cfg, err := config.Build()
		if err != nil {
			return err
		}

		// latency simulates the dashboard experience only
		cfg.StorageCfg.ListLatency = 0
		cfg.StorageCfg.MutationLatency = 0

		logger, err := infra.Logger(cfg.LogCfg)
		if err != nil {
			return err
		}

		storage, err := infra.CustomerStorage(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			_ = storage.Close(context.Background())
		}()

		for i, nc := range seed.NewGenerator(seedRandom).Customers(seedCount) {
			c, err := storage.Customers.Create(cmd.Context(), nc)
			if err != nil {
				return fmt.Errorf("failed to create customer %d - %w", i+1, err)
			}
			logger.WithField("id", c.ID).Debug("customer seeded")
		}

		logger.Infof("seeded %d customers into %s storage", seedCount, cfg.StorageCfg.Backend)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 25, "number of customers to create")
	seedCmd.Flags().Uint64Var(&seedRandom, "seed", 0, "random seed, 0 picks a random one")
}
