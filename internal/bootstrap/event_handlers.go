package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/brandish-progression/internal/event"
	"github.com/osse101/brandish-progression/internal/eventlog"
	"github.com/osse101/brandish-progression/internal/metrics"
	"github.com/osse101/brandish-progression/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	StreamHub       *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector, the event logger and the
// live stream. The logger and the stream are optional.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLogService != nil {
		if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
		}
		slog.Info(LogMsgEventLoggerInitialized)
	}

	if deps.StreamHub != nil {
		sse.NewSubscriber(deps.StreamHub, eventlog.LoggedTypes).Subscribe(deps.EventBus)
	}
	return nil
}
