package profile

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/brandish-progression/internal/domain"
)

// cachedProfileEntry wraps a committed profile with version metadata for cache invalidation
type cachedProfileEntry struct {
	Version  string
	Profile  *domain.PlayerProfile
	CachedAt time.Time
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// profileCache is an in-memory LRU of committed profiles with time-based expiration.
// Entries are cloned on the way in and out so no caller can mutate a cached profile.
type profileCache struct {
	lru    *expirable.LRU[string, *cachedProfileEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &profileCache{
		lru: expirable.NewLRU[string, *cachedProfileEntry](size, nil, ttl),
	}
}

// Get returns a copy of the cached profile if present and of the current schema version
func (c *profileCache) Get(key domain.ProfileKey) (*domain.PlayerProfile, bool) {
	entry, found := c.lru.Get(key.String())
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key.String())
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.Profile.Clone(), true
}

// Set stores a copy of a committed profile
func (c *profileCache) Set(p *domain.PlayerProfile) {
	c.lru.Add(p.Key().String(), &cachedProfileEntry{
		Version:  CacheSchemaVersion,
		Profile:  p.Clone(),
		CachedAt: time.Now(),
	})
}

// Invalidate drops a profile, used when the store reports it changed underneath us
func (c *profileCache) Invalidate(key domain.ProfileKey) {
	c.lru.Remove(key.String())
}

// Stats returns hit/miss counters and the current size
func (c *profileCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
