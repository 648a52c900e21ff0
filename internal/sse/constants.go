package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Stream control event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// QueryTypes filters the stream to a comma separated list of event types
const QueryTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgFlushError         = "Failed to flush SSE response"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
	LogMsgActorMissing       = "Event has no player, not streamed"
)
