package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/brandish-progression/internal/bootstrap"
	"github.com/osse101/brandish-progression/internal/config"
	"github.com/osse101/brandish-progression/internal/eventlog"
	"github.com/osse101/brandish-progression/internal/logger"
	"github.com/osse101/brandish-progression/internal/scheduler"
	"github.com/osse101/brandish-progression/internal/server"
	"github.com/osse101/brandish-progression/internal/sse"
	"github.com/osse101/brandish-progression/internal/tracing"
	"github.com/osse101/brandish-progression/internal/worker"
)

func main() {
	skipMigrate := flag.Bool("skip-migrate", false, "do not apply postgres migrations on startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, !*skipMigrate)
	stop()
	if err != nil {
		slog.Error("Service failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, migrate bool) (err error) {
	var components bootstrap.ShutdownComponents
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, components)
	}()

	components.TracingShutdown, err = tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.OTELEnabled,
		Endpoint:    cfg.OTELEndpoint,
		ServiceName: logger.DefaultServiceName,
		Version:     cfg.Version,
	})
	if err != nil {
		return err
	}

	c, err := bootstrap.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	stores, err := bootstrap.OpenStores(ctx, cfg, migrate)
	if err != nil {
		return err
	}
	components.Stores = stores

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	components.ResilientPublisher = publisher

	history := eventlog.NewService(stores.EventLog)
	hub := sse.NewHub()
	hub.Start()
	components.StreamHub = hub

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: history,
		StreamHub:       hub,
	}); err != nil {
		return err
	}

	players, err := bootstrap.BuildPlayerService(cfg, c, stores.Profiles, publisher)
	if err != nil {
		return err
	}

	pool := worker.NewPool(bootstrap.MaintenanceWorkers, bootstrap.MaintenanceQueueSize)
	pool.Start()
	components.WorkerPool = pool

	sched := scheduler.New(pool)
	sched.Schedule(cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(history, cfg.EventLogRetention))
	components.Scheduler = sched

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		CatalogVersion: c.Version(),
	}, server.Deps{
		Players: players,
		History: history,
		Ready:   stores.Ready,
		Stream:  hub,
	})
	components.Server = srv

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		return err
	}
}
