package eventlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/domain"
)

func entry(player string, at time.Time) Entry {
	return Entry{EventType: "mining.mined", GuildID: "g1", PlayerID: player, OccurredAt: at}
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(3)

	for i, p := range []string{"p1", "p2", "p1", "p1"} {
		require.NoError(t, repo.LogEvent(ctx, entry(p, testNow.Add(time.Duration(i)*time.Hour))))
	}

	got, err := repo.EventsByPlayer(ctx, domain.ProfileKey{GuildID: "g1", PlayerID: "p1"}, 10)
	require.NoError(t, err)
	require.Len(t, got, 2, "the first entry was evicted")
	assert.Equal(t, int64(4), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	got, err = repo.EventsByPlayer(ctx, domain.ProfileKey{GuildID: "g1", PlayerID: "p1"}, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	deleted, err := repo.CleanupOldEvents(ctx, testNow.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	got, err = repo.EventsByPlayer(ctx, domain.ProfileKey{GuildID: "g1", PlayerID: "p2"}, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
