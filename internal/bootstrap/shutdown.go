package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/brandish-progression/internal/event"
	"github.com/osse101/brandish-progression/internal/scheduler"
	"github.com/osse101/brandish-progression/internal/server"
	"github.com/osse101/brandish-progression/internal/sse"
	"github.com/osse101/brandish-progression/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	StreamHub          *sse.Hub
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Stores             *Stores
	TracingShutdown    func(context.Context) error
}

// GracefulShutdown stops the components in dependency order:
// 1. Live streams (release long-lived connections)
// 2. HTTP server (stop accepting new requests)
// 3. Background maintenance
// 4. Event publisher (flush pending events)
// 5. Stores and the tracer provider
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.StreamHub != nil {
		components.StreamHub.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Stores != nil {
		if err := components.Stores.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	if components.TracingShutdown != nil {
		if err := components.TracingShutdown(ctx); err != nil {
			slog.Error(LogMsgTracingShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
