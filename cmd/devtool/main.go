package main

import (
	"context"
	"os"
	"os/signal"
)

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&WaitForDBCommand{})
	r.Register(&CheckCatalogCommand{})
	r.Register(&HistoryCommand{out: os.Stdout})
	return r
}

func main() {
	registry := newRegistry()

	if len(os.Args) < 2 {
		registry.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, os.Args[2:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}
