package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/brandish-progression/internal/domain"
)

// Serve streams the events of key until the request ends or the hub stops.
// The optional "types" query parameter narrows the stream.
func Serve(w http.ResponseWriter, r *http.Request, hub *Hub, key domain.ProfileKey) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var eventTypes []string
	if filterParam := r.URL.Query().Get(QueryTypes); filterParam != "" {
		eventTypes = strings.Split(filterParam, ",")
	}

	client := hub.Register(key, eventTypes)
	slog.Info(LogMsgClientConnected,
		"client_id", client.ID,
		"player_id", key.PlayerID,
		"filters", eventTypes,
		"total_clients", hub.ClientCount())

	defer func() {
		hub.Unregister(client.ID)
		slog.Info(LogMsgClientDisconnected,
			"client_id", client.ID,
			"total_clients", hub.ClientCount())
	}()

	send := func(event Event) bool {
		msg, err := FormatSSEMessage(event)
		if err != nil {
			slog.Error(LogMsgWriteError, "error", err)
			return true
		}
		if _, err := w.Write(msg); err != nil {
			slog.Warn(LogMsgWriteError, "error", err)
			return false
		}
		if err := rc.Flush(); err != nil {
			slog.Warn(LogMsgFlushError, "error", err)
			return false
		}
		return true
	}

	if !send(Event{
		ID:        client.ID,
		Type:      EventTypeConnected,
		Timestamp: time.Now().Unix(),
		Payload: map[string]interface{}{
			"client_id": client.ID,
			"filters":   eventTypes,
		},
	}) {
		return
	}

	ticker := time.NewTicker(KeepaliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-client.EventChannel:
			if !ok {
				// Hub is shutting down
				return
			}
			if !send(event) {
				return
			}

		case <-ticker.C:
			if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
				return
			}
		}
	}
}
