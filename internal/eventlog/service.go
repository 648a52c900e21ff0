package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/event"
	"github.com/osse101/brandish-progression/internal/logger"
)

// Service records outcome events per player and serves their history
type Service interface {
	// Subscribe registers the event logger on every outcome event type
	Subscribe(bus event.Bus) error

	// History returns the newest entries of one player, newest first
	History(ctx context.Context, key domain.ProfileKey, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries older than the retention period
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// LoggedTypes are the event types recorded in the log
var LoggedTypes = []event.Type{
	event.PlayerCreated,
	event.PlayerLeveledUp,
	event.MaterialMined,
	event.ToolBroken,
	event.ToolRepaired,
	event.ToolUpgraded,
	event.CraftAttempted,
	event.JobJoined,
	event.JobLeft,
	event.ShiftWorked,
	event.SalaryClaimed,
	event.LootboxOpened,
	event.MissionCompleted,
	event.MissionClaimed,
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Subscribe registers event handlers for all logged types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent stores the event under the player named by its payload
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodePayload, err)
	}

	var actor event.Actor
	if err := json.Unmarshal(payload, &actor); err != nil || actor.PlayerID == "" {
		log.Debug(LogMsgActorMissing, LogFieldType, evt.Type)
		return nil
	}

	occurred := evt.OccurredAt
	if occurred.IsZero() {
		occurred = s.now()
	}
	entry := Entry{
		EventType:  string(evt.Type),
		GuildID:    actor.GuildID,
		PlayerID:   actor.PlayerID,
		Payload:    payload,
		Metadata:   evt.Metadata,
		OccurredAt: occurred.UTC(),
	}
	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldPlayerID, actor.PlayerID)
	return nil
}

// History returns up to limit entries; a non-positive limit uses the default
func (s *service) History(ctx context.Context, key domain.ProfileKey, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return nil, fmt.Errorf(ErrFmtLimit, domain.ErrInvalidInput, limit)
	}
	return s.repo.EventsByPlayer(ctx, key, limit)
}

// CleanupOldEvents removes entries older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}
