// Package logtest holds the behaviour every eventlog.Repository must share.
package logtest

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/eventlog"
)

var testNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

// Run exercises a repository through its public contract. newRepo must return an empty log.
func Run(t *testing.T, newRepo func(t *testing.T) eventlog.Repository) {
	ctx := context.Background()
	key := domain.ProfileKey{GuildID: "g1", PlayerID: "p1"}

	t.Run("newest first per player", func(t *testing.T) {
		repo := newRepo(t)
		for i, player := range []string{"p1", "p2", "p1", "p1"} {
			require.NoError(t, repo.LogEvent(ctx, eventlog.Entry{
				EventType:  "mining.mined",
				GuildID:    "g1",
				PlayerID:   player,
				Payload:    json.RawMessage(fmt.Sprintf(`{"quantity":%d}`, i+1)),
				Metadata:   map[string]interface{}{"schema": "1.0"},
				OccurredAt: testNow.Add(time.Duration(i) * time.Minute),
			}))
		}

		got, err := repo.EventsByPlayer(ctx, key, 2)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].OccurredAt.Equal(testNow.Add(3*time.Minute)))
		assert.True(t, got[1].OccurredAt.Equal(testNow.Add(2*time.Minute)))
		assert.JSONEq(t, `{"quantity":4}`, string(got[0].Payload))
		assert.Equal(t, "1.0", got[0].Metadata["schema"])
		assert.NotZero(t, got[0].ID)
	})

	t.Run("unknown player", func(t *testing.T) {
		got, err := newRepo(t).EventsByPlayer(ctx, domain.ProfileKey{GuildID: "g1", PlayerID: "nobody"}, 10)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("cleanup removes older entries only", func(t *testing.T) {
		repo := newRepo(t)
		for i := range 3 {
			require.NoError(t, repo.LogEvent(ctx, eventlog.Entry{
				EventType:  "job.worked",
				GuildID:    key.GuildID,
				PlayerID:   key.PlayerID,
				Payload:    json.RawMessage(`{}`),
				OccurredAt: testNow.Add(time.Duration(i) * time.Hour),
			}))
		}

		deleted, err := repo.CleanupOldEvents(ctx, testNow.Add(90*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		got, err := repo.EventsByPlayer(ctx, key, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
