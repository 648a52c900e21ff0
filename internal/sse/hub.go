package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/brandish-progression/internal/domain"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one open stream for a single player
type Client struct {
	ID           string
	Key          domain.ProfileKey
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types
}

func (c *Client) wants(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

type delivery struct {
	key   domain.ProfileKey
	event Event
}

// Hub fans player events out to the streams open for that player
type Hub struct {
	mu        sync.RWMutex
	clients   map[string]*Client
	broadcast chan delivery
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan delivery, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
		now:       time.Now,
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client channel. It is safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case d := <-h.broadcast:
			h.deliver(d)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) deliver(d delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.Key != d.key || !client.wants(d.event.Type) {
			continue
		}
		// Slow clients miss events rather than stall the loop
		select {
		case client.EventChannel <- d.event:
		default:
		}
	}
}

// Register opens a stream for key. An empty eventTypes receives every type.
// Registering after Stop returns a client whose channel is already closed.
func (h *Hub) Register(key domain.ProfileKey, eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		Key:          key,
		EventChannel: make(chan Event, ClientEventBuffer),
	}

	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.shutdown:
		close(client.EventChannel)
	default:
		h.clients[client.ID] = client
	}
	return client
}

// Unregister removes a client from the hub and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for the streams of key. It reports false when
// the broadcast buffer is full and the event was dropped.
func (h *Hub) Broadcast(key domain.ProfileKey, eventType string, payload interface{}) bool {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- delivery{key: key, event: event}:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
