package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/concurrency"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/ledger"
	"github.com/osse101/brandish-progression/internal/logger"
)

// MutateFunc changes a working copy of the profile. Returning an error discards the copy.
type MutateFunc func(p *domain.PlayerProfile, now time.Time) error

// Config tunes the profile service
type Config struct {
	CacheSize  int
	CacheTTL   time.Duration
	MaxRetries int
	// Clock defaults to time.Now
	Clock func() time.Time
	// OnConflict is called for every version conflict reported by the store
	OnConflict func(key domain.ProfileKey)
}

// Service is the load/mutate/save boundary around the store. Mutations of one profile
// are serialized by a per-key lock in this process and by the version check across processes.
type Service struct {
	store   Store
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	locks   *concurrency.KeyedLocker[domain.ProfileKey]
	cache   *profileCache
	cfg     Config
}

// NewService creates a profile service
func NewService(store Store, c *catalog.Catalog, l *ledger.Ledger, cfg Config) *Service {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Service{
		store:   store,
		catalog: c,
		ledger:  l,
		locks:   concurrency.NewKeyedLocker[domain.ProfileKey](),
		cache:   newProfileCache(cfg.CacheSize, cfg.CacheTTL),
		cfg:     cfg,
	}
}

// Now returns the service clock
func (s *Service) Now() time.Time {
	return s.cfg.Clock()
}

// Get returns a copy of the committed profile. It never creates one.
func (s *Service) Get(ctx context.Context, key domain.ProfileKey) (*domain.PlayerProfile, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return s.load(ctx, key)
}

// Mutate loads the profile (creating it with catalog defaults when absent), applies fn to a
// working copy and saves the copy. Nothing is persisted when fn fails. A version conflict
// reloads the profile and runs fn again, up to MaxRetries attempts.
func (s *Service) Mutate(ctx context.Context, key domain.ProfileKey, fn MutateFunc) (*domain.PlayerProfile, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	unlock, err := s.locks.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		now := s.cfg.Clock()

		working, err := s.load(ctx, key)
		if errors.Is(err, domain.ErrProfileNotFound) {
			working, err = s.NewProfile(ctx, key, now)
		}
		if err != nil {
			return nil, err
		}

		if err := fn(working, now); err != nil {
			return nil, err
		}
		working.UpdatedAt = now

		err = s.store.Save(ctx, working)
		if err == nil {
			s.cache.Set(working)
			log.Debug(LogMsgProfileSaved, "profile", key.String(), "version", working.Version)
			return working, nil
		}

		s.cache.Invalidate(key)
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, fmt.Errorf(ErrFmtSave, key, err)
		}
		if s.cfg.OnConflict != nil {
			s.cfg.OnConflict(key)
		}
		log.Warn(LogMsgVersionConflict, "profile", key.String(), "attempt", attempt, "error", err)
		lastErr = err
	}
	return nil, fmt.Errorf(ErrFmtRetriesExhausted, key, s.cfg.MaxRetries, lastErr)
}

// NewProfile builds an unsaved profile with the catalog defaults applied:
// starting balances, capacity, zone, and the starter tool granted and equipped.
func (s *Service) NewProfile(ctx context.Context, key domain.ProfileKey, now time.Time) (*domain.PlayerProfile, error) {
	defaults := s.catalog.Defaults()

	p := domain.NewPlayerProfile(key.PlayerID, key.GuildID, now)
	p.Currency = domain.Currency{Coins: defaults.Coins, Tokens: defaults.Tokens}
	p.Crafting.InventoryCapacity = defaults.InventoryCapacity
	p.Crafting.ActiveZone = defaults.Zone

	if defaults.StarterTool != "" {
		if _, err := s.ledger.GrantTool(p, defaults.StarterTool); err != nil {
			return nil, fmt.Errorf(ErrFmtStarterTool, defaults.StarterTool, err)
		}
		if _, err := s.ledger.EquipTool(p, defaults.StarterTool); err != nil {
			return nil, fmt.Errorf(ErrFmtStarterTool, defaults.StarterTool, err)
		}
	}

	logger.FromContext(ctx).Info(LogMsgProfileCreated, "profile", key.String(),
		"coins", p.Currency.Coins, "starter_tool", p.EquippedToolID)
	return p, nil
}

// CacheStats reports the read cache counters
func (s *Service) CacheStats() CacheStats {
	return s.cache.Stats()
}

func (s *Service) load(ctx context.Context, key domain.ProfileKey) (*domain.PlayerProfile, error) {
	if p, ok := s.cache.Get(key); ok {
		return p, nil
	}
	p, err := s.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrFmtLoad, key, err)
	}
	s.cache.Set(p)
	return p, nil
}

func validateKey(key domain.ProfileKey) error {
	if key.GuildID == "" || key.PlayerID == "" {
		return fmt.Errorf(ErrFmtInvalidKey, domain.ErrInvalidInput, key.String())
	}
	return nil
}
