package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/osse101/brandish-progression/internal/bootstrap"
	"github.com/osse101/brandish-progression/internal/config"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/eventlog"
)

type HistoryCommand struct {
	out io.Writer
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Print a player's recorded events as JSON lines"
}

func (c *HistoryCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	limit := fs.Int("limit", eventlog.DefaultHistoryLimit, "maximum number of events")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: history [-limit n] <guild_id> <player_id>")
	}
	key := domain.ProfileKey{GuildID: fs.Arg(0), PlayerID: fs.Arg(1)}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	stores, err := bootstrap.OpenStores(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer stores.Close()

	return printHistory(ctx, c.out, eventlog.NewService(stores.EventLog), key, *limit)
}

func printHistory(ctx context.Context, w io.Writer, history eventlog.Service, key domain.ProfileKey, limit int) error {
	entries, err := history.History(ctx, key, limit)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
