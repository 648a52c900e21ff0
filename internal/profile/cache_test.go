package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/brandish-progression/internal/domain"
)

func TestProfileCache(t *testing.T) {
	cache := newProfileCache(10, time.Minute)
	p := domain.NewPlayerProfile("p1", "g1", testNow)
	p.Currency.Coins = 5

	_, found := cache.Get(p.Key())
	assert.False(t, found)

	cache.Set(p)
	p.Currency.Coins = 500

	got, found := cache.Get(p.Key())
	assert.True(t, found)
	assert.Equal(t, int64(5), got.Currency.Coins, "the cache keeps its own copy")

	got.Currency.Coins = 7
	again, _ := cache.Get(p.Key())
	assert.Equal(t, int64(5), again.Currency.Coins, "callers receive copies")

	cache.Invalidate(p.Key())
	_, found = cache.Get(p.Key())
	assert.False(t, found)

	stats := cache.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 0, stats.Size)
}

func TestProfileCache_SchemaVersionMismatch(t *testing.T) {
	cache := newProfileCache(10, time.Minute)
	p := domain.NewPlayerProfile("p1", "g1", testNow)
	cache.lru.Add(p.Key().String(), &cachedProfileEntry{Version: "0", Profile: p, CachedAt: testNow})

	_, found := cache.Get(p.Key())

	assert.False(t, found)
	assert.Equal(t, 0, cache.Stats().Size)
}
