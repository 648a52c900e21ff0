package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/brandish-progression/internal/domain"
)

// Store persists whole profile documents.
//
// Save is an optimistic compare-and-swap: p.Version must equal the stored version
// (0 for a profile that was never saved), otherwise it fails with domain.ErrVersionConflict.
// On success the store bumps p.Version.
type Store interface {
	Load(ctx context.Context, key domain.ProfileKey) (*domain.PlayerProfile, error)
	Save(ctx context.Context, p *domain.PlayerProfile) error
}

type storedDocument struct {
	version int64
	data    []byte
}

// MemoryStore keeps encoded documents in a map. Profiles never share memory with
// callers because every Load decodes a fresh copy.
type MemoryStore struct {
	mu    sync.RWMutex
	codec *Codec
	docs  map[string]storedDocument
}

// NewMemoryStore creates an in-process store
func NewMemoryStore(codec *Codec) *MemoryStore {
	return &MemoryStore{codec: codec, docs: make(map[string]storedDocument)}
}

// Load decodes the stored document for key
func (s *MemoryStore) Load(_ context.Context, key domain.ProfileKey) (*domain.PlayerProfile, error) {
	s.mu.RLock()
	doc, ok := s.docs[key.String()]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf(ErrFmtNotFound, domain.ErrProfileNotFound, key)
	}

	p, err := s.codec.Decode(doc.data)
	if err != nil {
		return nil, err
	}
	p.Version = doc.version
	return p, nil
}

// Save stores p if its version matches
func (s *MemoryStore) Save(_ context.Context, p *domain.PlayerProfile) error {
	key := p.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.docs[key.String()].version
	if stored != p.Version {
		return fmt.Errorf(ErrFmtStaleVersion, domain.ErrVersionConflict, key, p.Version, stored)
	}

	next := p.Version + 1
	saved := *p
	saved.Version = next
	data, err := s.codec.Encode(&saved)
	if err != nil {
		return fmt.Errorf(ErrFmtEncode, key, err)
	}

	s.docs[key.String()] = storedDocument{version: next, data: data}
	p.Version = next
	return nil
}

// Len returns how many profiles are stored
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
