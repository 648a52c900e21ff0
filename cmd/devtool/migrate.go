package main

import (
	"context"
	"fmt"

	"github.com/osse101/brandish-progression/internal/bootstrap"
	"github.com/osse101/brandish-progression/internal/config"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply pending migrations to the configured store"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreDriver == config.StoreMemory {
		return fmt.Errorf("STORE_DRIVER=%s has no schema to migrate", cfg.StoreDriver)
	}

	PrintHeader(fmt.Sprintf("Migrating %s store...", cfg.StoreDriver))
	stores, err := bootstrap.OpenStores(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer stores.Close()

	PrintSuccess("Schema is up to date")
	return nil
}
