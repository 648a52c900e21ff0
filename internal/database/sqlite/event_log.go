package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/eventlog"
)

// EventLogRepository stores outcome events next to the profiles
type EventLogRepository struct {
	db *sql.DB
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// EventLog returns the event log sharing this store's database
func (s *ProfileStore) EventLog() *EventLogRepository {
	return &EventLogRepository{db: s.db}
}

// LogEvent inserts one entry
func (r *EventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	var metadata []byte
	if len(entry.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
		}
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO event_log (event_type, guild_id, player_id, payload, metadata, occurred_at)
VALUES (?, ?, ?, ?, ?, ?)
`, entry.EventType, entry.GuildID, entry.PlayerID, []byte(entry.Payload), metadata, entry.OccurredAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// EventsByPlayer returns the newest entries of one player
func (r *EventLogRepository) EventsByPlayer(ctx context.Context, key domain.ProfileKey, limit int) ([]eventlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, event_type, guild_id, player_id, payload, metadata, occurred_at
FROM event_log
WHERE guild_id = ? AND player_id = ?
ORDER BY occurred_at DESC, id DESC
LIMIT ?
`, key.GuildID, key.PlayerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	var entries []eventlog.Entry
	for rows.Next() {
		var e eventlog.Entry
		var payload, metadata []byte
		var occurred int64
		if err := rows.Scan(&e.ID, &e.EventType, &e.GuildID, &e.PlayerID, &payload, &metadata, &occurred); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
		}
		e.Payload = payload
		e.OccurredAt = time.UnixMilli(occurred).UTC()
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_log WHERE occurred_at < ?`, before.UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return res.RowsAffected()
}
