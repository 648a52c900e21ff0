package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/testing/leaktest"
)

var (
	keyP1 = domain.ProfileKey{GuildID: "g1", PlayerID: "p1"}
	keyP2 = domain.ProfileKey{GuildID: "g1", PlayerID: "p2"}
)

func TestHub_DeliverRoutesByPlayer(t *testing.T) {
	h := NewHub()
	c1 := h.Register(keyP1, nil)
	c2 := h.Register(keyP2, nil)
	other := h.Register(domain.ProfileKey{GuildID: "g2", PlayerID: "p1"}, nil)

	h.deliver(delivery{key: keyP1, event: Event{ID: "e1", Type: "mining.mined"}})

	require.Len(t, c1.EventChannel, 1)
	assert.Equal(t, "e1", (<-c1.EventChannel).ID)
	assert.Empty(t, c2.EventChannel)
	assert.Empty(t, other.EventChannel, "same player id in another guild is a different player")
}

func TestHub_EventFilter(t *testing.T) {
	h := NewHub()
	c := h.Register(keyP1, []string{"tool.broken"})

	h.deliver(delivery{key: keyP1, event: Event{Type: "mining.mined"}})
	h.deliver(delivery{key: keyP1, event: Event{Type: "tool.broken"}})

	require.Len(t, c.EventChannel, 1)
	assert.Equal(t, "tool.broken", (<-c.EventChannel).Type)
}

func TestHub_SlowClientDropsEvents(t *testing.T) {
	h := NewHub()
	c := h.Register(keyP1, nil)

	for i := 0; i < ClientEventBuffer+5; i++ {
		h.deliver(delivery{key: keyP1, event: Event{Type: "mining.mined"}})
	}
	assert.Len(t, c.EventChannel, ClientEventBuffer)
}

func TestHub_BroadcastBufferFull(t *testing.T) {
	h := NewHub()
	for i := 0; i < BroadcastBufferSize; i++ {
		require.True(t, h.Broadcast(keyP1, "mining.mined", nil))
	}
	assert.False(t, h.Broadcast(keyP1, "mining.mined", nil))
}

func TestHub_StartDelivers(t *testing.T) {
	h := NewHub()
	h.now = func() time.Time { return time.Unix(1700000000, 0) }
	h.Start()
	defer h.Stop()

	c := h.Register(keyP1, nil)
	require.True(t, h.Broadcast(keyP1, "mining.mined", map[string]int{"quantity": 2}))

	select {
	case evt := <-c.EventChannel:
		assert.Equal(t, "mining.mined", evt.Type)
		assert.Equal(t, int64(1700000000), evt.Timestamp)
		assert.NotEmpty(t, evt.ID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHub_Unregister(t *testing.T) {
	h := NewHub()
	c := h.Register(keyP1, nil)
	assert.Equal(t, 1, h.ClientCount())

	h.Unregister(c.ID)
	assert.Equal(t, 0, h.ClientCount())
	_, ok := <-c.EventChannel
	assert.False(t, ok)

	assert.NotPanics(t, func() { h.Unregister(c.ID) })
}

func TestHub_Stop(t *testing.T) {
	leaktest.Check(t)
	h := NewHub()
	h.Start()
	c := h.Register(keyP1, nil)

	h.Stop()
	_, ok := <-c.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, h.ClientCount())

	late := h.Register(keyP1, nil)
	_, ok = <-late.EventChannel
	assert.False(t, ok, "registering after stop yields a closed stream")

	assert.NotPanics(t, h.Stop)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "abc", Type: "job.worked", Timestamp: 5, Payload: map[string]int{"net": 97}})
	require.NoError(t, err)

	lines := strings.Split(string(msg), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "id: abc", lines[0])
	assert.Equal(t, "event: job.worked", lines[1])
	assert.Equal(t, `data: {"id":"abc","type":"job.worked","timestamp":5,"payload":{"net":97}}`, lines[2])
	assert.True(t, strings.HasSuffix(string(msg), "\n\n"))
}
