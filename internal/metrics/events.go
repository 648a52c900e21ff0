package metrics

import (
	"context"

	"github.com/osse101/brandish-progression/internal/event"
	"github.com/osse101/brandish-progression/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.PlayerLeveledUp,
		event.MaterialMined,
		event.ToolBroken,
		event.CraftAttempted,
		event.ShiftWorked,
		event.SalaryClaimed,
		event.LootboxOpened,
		event.MissionClaimed,
		event.ProfileStoreConflict,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := e.record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) record(evt event.Event) error {
	switch evt.Type {
	case event.PlayerLeveledUp:
		p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		LevelUps.Add(float64(p.NewLevel - p.OldLevel))

	case event.MaterialMined:
		p, err := event.DecodePayload[event.MinedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		MaterialsMined.WithLabelValues(p.MaterialID).Add(float64(p.Quantity))

	case event.ToolBroken:
		p, err := event.DecodePayload[event.ToolPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		ToolsBroken.WithLabelValues(p.ToolID).Inc()

	case event.CraftAttempted:
		p, err := event.DecodePayload[event.CraftPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		CraftAttempts.WithLabelValues(p.BlueprintID, outcome(p.Crafted)).Inc()

	case event.ShiftWorked:
		p, err := event.DecodePayload[event.WorkPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		ShiftsWorked.WithLabelValues(p.JobID, outcome(!p.Failed)).Inc()
		CoinsPaid.WithLabelValues(SourceWork).Add(float64(p.Net))
		TaxCollected.Add(float64(p.Tax))

	case event.SalaryClaimed:
		p, err := event.DecodePayload[event.SalaryPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		CoinsPaid.WithLabelValues(SourceSalary).Add(float64(p.Coins))

	case event.LootboxOpened:
		p, err := event.DecodePayload[event.LootboxPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		LootboxesOpened.WithLabelValues(p.BoxID, p.Source).Inc()
		if p.PityTriggered {
			PityTriggers.WithLabelValues(p.BoxID).Inc()
		}

	case event.MissionClaimed:
		p, err := event.DecodePayload[event.MissionPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		MissionsClaimed.WithLabelValues(p.Scope).Inc()

	case event.ProfileStoreConflict:
		ProfileConflicts.Inc()
	}
	return nil
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
