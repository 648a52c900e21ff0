package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/bootstrap"
	"github.com/osse101/brandish-progression/internal/config"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the configured store to accept connections (with retries)"
}

func (c *WaitForDBCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	maxRetries := fs.Int("retries", 30, "number of attempts")
	retryInterval := fs.Duration("interval", 2*time.Second, "delay between attempts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	PrintHeader("Waiting for database...")

	for i := 0; i < *maxRetries; i++ {
		err = ping(ctx, cfg)
		if err == nil {
			PrintSuccess("Database is ready")
			return nil
		}

		PrintInfo("Database not ready (%d/%d): %v", i+1, *maxRetries, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(*retryInterval):
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", *maxRetries, err)
}

func ping(ctx context.Context, cfg *config.Config) error {
	stores, err := bootstrap.OpenStores(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer stores.Close()

	if stores.Ready == nil {
		return nil
	}
	return stores.Ready.Ping(ctx)
}
