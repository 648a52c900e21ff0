package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/brandish-progression/internal/domain"
)

// MemoryRepository keeps the newest entries in process. The oldest entry is dropped
// once capacity is reached.
type MemoryRepository struct {
	mu       sync.RWMutex
	entries  []Entry
	nextID   int64
	capacity int
}

// NewMemoryRepository creates a bounded in-memory event log
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

func (r *MemoryRepository) LogEvent(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	if len(r.entries) >= r.capacity {
		r.entries = r.entries[1:]
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *MemoryRepository) EventsByPlayer(_ context.Context, key domain.ProfileKey, limit int) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Entry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.entries[i]
		if e.GuildID == key.GuildID && e.PlayerID == key.PlayerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CleanupOldEvents(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if !e.OccurredAt.Before(before) {
			kept = append(kept, e)
		}
	}
	deleted := int64(len(r.entries) - len(kept))
	clear(r.entries[len(kept):])
	r.entries = kept
	return deleted, nil
}
