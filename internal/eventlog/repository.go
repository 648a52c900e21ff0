package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/osse101/brandish-progression/internal/domain"
)

// Entry is one recorded outcome event
type Entry struct {
	ID         int64                  `json:"id"`
	EventType  string                 `json:"event_type"`
	GuildID    string                 `json:"guild_id"`
	PlayerID   string                 `json:"player_id"`
	Payload    json.RawMessage        `json:"payload"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Repository defines the interface for event log storage
type Repository interface {
	// LogEvent stores an entry
	LogEvent(ctx context.Context, entry Entry) error

	// EventsByPlayer returns the newest entries of one player, newest first
	EventsByPlayer(ctx context.Context, key domain.ProfileKey, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries that occurred before the cutoff
	CleanupOldEvents(ctx context.Context, before time.Time) (int64, error)
}
