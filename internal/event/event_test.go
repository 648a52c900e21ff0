package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event
	bus.Subscribe(MaterialMined, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	payload := MinedPayloadV1{Actor: Actor{GuildID: "g1", PlayerID: "p1"}, MaterialID: "stone", Quantity: 3}
	require.NoError(t, bus.Publish(context.Background(), New(MaterialMined, payload, time.Now())))
	require.NoError(t, bus.Publish(context.Background(), New(ShiftWorked, nil, time.Now())))

	require.Len(t, got, 1)
	assert.Equal(t, EventSchemaVersion, got[0].Version)
	assert.Equal(t, payload, got[0].Payload)
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	for range 3 {
		bus.Subscribe(LootboxOpened, func(context.Context, Event) error {
			calls++
			if calls > 1 {
				return errors.New("boom")
			}
			return nil
		})
	}

	err := bus.Publish(context.Background(), New(LootboxOpened, nil, time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 2 errors")
	assert.Equal(t, 3, calls, "every handler runs even after a failure")
}

func TestDecodePayload(t *testing.T) {
	t.Run("typed payload", func(t *testing.T) {
		p := LevelUpPayloadV1{Actor: Actor{PlayerID: "p1"}, OldLevel: 1, NewLevel: 3}
		got, err := DecodePayload[LevelUpPayloadV1](p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("map payload", func(t *testing.T) {
		raw := map[string]any{"player_id": "p1", "job_id": "miner", "net": 42}
		got, err := DecodePayload[WorkPayloadV1](raw)
		require.NoError(t, err)
		assert.Equal(t, "p1", got.PlayerID)
		assert.Equal(t, "miner", got.JobID)
		assert.Equal(t, int64(42), got.Net)
	})

	t.Run("pointer payload", func(t *testing.T) {
		p := &MinedPayloadV1{Actor: Actor{PlayerID: "p1"}, MaterialID: "stone", Quantity: 3}
		got, err := DecodePayload[MinedPayloadV1](p)
		require.NoError(t, err)
		assert.Equal(t, *p, got)
	})

	t.Run("nil pointer payload", func(t *testing.T) {
		_, err := DecodePayload[MinedPayloadV1]((*MinedPayloadV1)(nil))
		assert.Error(t, err)
	})

	t.Run("replayed json", func(t *testing.T) {
		raw := json.RawMessage(`{"player_id":"p1","guild_id":"g1"}`)
		got, err := DecodePayload[Actor](raw)
		require.NoError(t, err)
		assert.Equal(t, Actor{PlayerID: "p1", GuildID: "g1"}, got)

		got, err = DecodePayload[Actor]([]byte(`{"player_id":"p2"}`))
		require.NoError(t, err)
		assert.Equal(t, "p2", got.PlayerID)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		_, err := DecodePayload[Actor](make(chan int))
		assert.Error(t, err)
	})
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 400*time.Millisecond, CalculateRetryDelay(base, 3))
}
