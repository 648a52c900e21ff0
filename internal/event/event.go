package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version    string         `json:"version"` // Event schema version (e.g., "1.0")
	Type       Type           `json:"type"`
	Payload    interface{}    `json:"payload"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Settled action event types
const (
	PlayerCreated        Type = "player.created"
	PlayerLeveledUp      Type = "player.leveled_up"
	MaterialMined        Type = "mining.mined"
	ToolBroken           Type = "tool.broken"
	ToolRepaired         Type = "tool.repaired"
	ToolUpgraded         Type = "tool.upgraded"
	CraftAttempted       Type = "crafting.attempted"
	JobJoined            Type = "job.joined"
	JobLeft              Type = "job.left"
	ShiftWorked          Type = "job.worked"
	SalaryClaimed        Type = "job.salary_claimed"
	LootboxOpened        Type = "lootbox.opened"
	MissionCompleted     Type = "mission.completed"
	MissionClaimed       Type = "mission.claimed"
	ProfileStoreConflict Type = "profile.store_conflict"
)

// Actor identifies the player an event is about
type Actor struct {
	GuildID  string `json:"guild_id"`
	PlayerID string `json:"player_id"`
}

// Typed event payloads for type safety

// LevelUpPayloadV1 reports global level gains
type LevelUpPayloadV1 struct {
	Actor
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
}

// MinedPayloadV1 reports a settled mine
type MinedPayloadV1 struct {
	Actor
	ZoneID     string `json:"zone_id"`
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
	Quality    int    `json:"quality"`
	Rare       bool   `json:"rare"`
}

// ToolPayloadV1 reports a tool state change
type ToolPayloadV1 struct {
	Actor
	ToolID string `json:"tool_id"`
	Cost   int64  `json:"cost,omitempty"`
	Level  int    `json:"level,omitempty"`
	Tier   int    `json:"tier,omitempty"`
}

// CraftPayloadV1 reports a craft attempt, successful or not
type CraftPayloadV1 struct {
	Actor
	BlueprintID string  `json:"blueprint_id"`
	Crafted     bool    `json:"crafted"`
	SuccessRate float64 `json:"success_rate"`
}

// JobPayloadV1 reports a membership change
type JobPayloadV1 struct {
	Actor
	JobID string `json:"job_id"`
}

// WorkPayloadV1 reports a settled shift
type WorkPayloadV1 struct {
	Actor
	JobID     string `json:"job_id"`
	Failed    bool   `json:"failed"`
	Penalty   int64  `json:"penalty,omitempty"`
	Gross     int64  `json:"gross"`
	Tax       int64  `json:"tax"`
	TaxEvaded int64  `json:"tax_evaded"`
	Net       int64  `json:"net"`
	JobLevel  int    `json:"job_level"`
	LevelUp   bool   `json:"level_up"`
}

// SalaryPayloadV1 reports a salary claim
type SalaryPayloadV1 struct {
	Actor
	JobID  string `json:"job_id"`
	Period string `json:"period"`
	Coins  int64  `json:"coins"`
	Tokens int64  `json:"tokens"`
}

// LootboxPayloadV1 reports an opened box
type LootboxPayloadV1 struct {
	Actor
	BoxID         string `json:"box_id"`
	Source        string `json:"source"`
	Rewards       int    `json:"rewards"`
	Lucky         bool   `json:"lucky"`
	Jackpot       bool   `json:"jackpot"`
	PityTriggered bool   `json:"pity_triggered"`
}

// MissionPayloadV1 reports a mission completion or claim
type MissionPayloadV1 struct {
	Actor
	MissionID string `json:"mission_id"`
	Scope     string `json:"scope"`
	Type      string `json:"type"`
	Goal      int    `json:"goal"`
}

// New wraps a payload in a versioned event
func New(t Type, payload interface{}, at time.Time) Event {
	return Event{
		Version:    EventSchemaVersion,
		Type:       t,
		Payload:    payload,
		OccurredAt: at,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
