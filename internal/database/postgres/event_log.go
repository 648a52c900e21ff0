package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/eventlog"
)

// EventLogRepository stores outcome events in the event_log table
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// LogEvent inserts one entry
func (r *EventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	var metadata []byte
	if len(entry.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
		}
	}

	query := `
		INSERT INTO event_log (event_type, guild_id, player_id, payload, metadata, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, entry.EventType, entry.GuildID, entry.PlayerID, []byte(entry.Payload), metadata, entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// EventsByPlayer returns the newest entries of one player
func (r *EventLogRepository) EventsByPlayer(ctx context.Context, key domain.ProfileKey, limit int) ([]eventlog.Entry, error) {
	query := `
		SELECT id, event_type, guild_id, player_id, payload, metadata, occurred_at
		FROM event_log
		WHERE guild_id = $1 AND player_id = $2
		ORDER BY occurred_at DESC, id DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, key.GuildID, key.PlayerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	var entries []eventlog.Entry
	for rows.Next() {
		var e eventlog.Entry
		var payload, metadata []byte
		if err := rows.Scan(&e.ID, &e.EventType, &e.GuildID, &e.PlayerID, &payload, &metadata, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
		}
		e.Payload = payload
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return entries, nil
}

// CleanupOldEvents deletes entries older than before
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM event_log WHERE occurred_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}
