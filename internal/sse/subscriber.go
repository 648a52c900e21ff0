package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/event"
	"github.com/osse101/brandish-progression/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub   *Hub
	types []event.Type
}

// NewSubscriber creates a subscriber forwarding the given event types
func NewSubscriber(hub *Hub, types []event.Type) *Subscriber {
	return &Subscriber{hub: hub, types: types}
}

// Subscribe registers the forwarding handler for every configured type
func (s *Subscriber) Subscribe(bus event.Bus) {
	for _, t := range s.types {
		bus.Subscribe(t, s.handleEvent)
	}
	slog.Info(LogMsgSubscriberReady, "types", s.types)
}

// handleEvent forwards the event to the streams of the player named in its payload
func (s *Subscriber) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	actor, err := event.DecodePayload[event.Actor](evt.Payload)
	if err != nil || actor.PlayerID == "" {
		log.Debug(LogMsgActorMissing, "event_type", evt.Type)
		return nil
	}

	key := domain.ProfileKey{GuildID: actor.GuildID, PlayerID: actor.PlayerID}
	if !s.hub.Broadcast(key, string(evt.Type), evt.Payload) {
		log.Warn(LogMsgEventDropped, "event_type", evt.Type, "player_id", actor.PlayerID)
		return nil
	}

	log.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "player_id", actor.PlayerID)
	return nil
}
