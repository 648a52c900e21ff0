package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/event"
)

func TestSubscriber_ForwardsPlayerEvents(t *testing.T) {
	h := NewHub()
	bus := event.NewMemoryBus()
	NewSubscriber(h, []event.Type{event.MaterialMined}).Subscribe(bus)

	payload := event.MinedPayloadV1{
		Actor:      event.Actor{GuildID: "g1", PlayerID: "p1"},
		MaterialID: "iron_ore",
		Quantity:   2,
	}
	require.NoError(t, bus.Publish(context.Background(), event.New(event.MaterialMined, payload, time.Now())))

	require.Len(t, h.broadcast, 1)
	d := <-h.broadcast
	assert.Equal(t, keyP1, d.key)
	assert.Equal(t, string(event.MaterialMined), d.event.Type)
	assert.Equal(t, payload, d.event.Payload)
}

func TestSubscriber_SkipsEventsWithoutPlayer(t *testing.T) {
	h := NewHub()
	bus := event.NewMemoryBus()
	NewSubscriber(h, []event.Type{event.ProfileStoreConflict}).Subscribe(bus)

	err := bus.Publish(context.Background(), event.New(event.ProfileStoreConflict, map[string]string{"reason": "version"}, time.Now()))
	require.NoError(t, err)
	assert.Empty(t, h.broadcast)
}

func TestSubscriber_IgnoresUnsubscribedTypes(t *testing.T) {
	h := NewHub()
	bus := event.NewMemoryBus()
	NewSubscriber(h, []event.Type{event.MaterialMined}).Subscribe(bus)

	payload := event.ToolPayloadV1{Actor: event.Actor{GuildID: "g1", PlayerID: "p1"}, ToolID: "pick"}
	require.NoError(t, bus.Publish(context.Background(), event.New(event.ToolBroken, payload, time.Now())))
	assert.Empty(t, h.broadcast)
}
