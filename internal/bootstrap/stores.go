package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/brandish-progression/internal/config"
	"github.com/osse101/brandish-progression/internal/database"
	"github.com/osse101/brandish-progression/internal/database/postgres"
	"github.com/osse101/brandish-progression/internal/database/sqlite"
	"github.com/osse101/brandish-progression/internal/eventlog"
	"github.com/osse101/brandish-progression/internal/handler"
	"github.com/osse101/brandish-progression/internal/profile"
)

// Stores holds the persistence chosen by STORE_DRIVER
type Stores struct {
	Profiles profile.Store
	EventLog eventlog.Repository
	// Ready is nil for the memory driver
	Ready handler.Pinger

	closers []func() error
}

// Close releases every connection the stores hold
func (s *Stores) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenStores opens the profile store and event log for cfg.StoreDriver.
// The postgres schema is migrated only when migrate is set; sqlite always migrates on open.
func OpenStores(ctx context.Context, cfg *config.Config, migrate bool) (*Stores, error) {
	codec, err := profile.NewCodec(cfg.SQLiteCompress)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateCodec, err)
	}
	stores := &Stores{closers: []func() error{func() error { codec.Close(); return nil }}}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		stores.Profiles = profile.NewMemoryStore(codec)
		stores.EventLog = eventlog.NewMemoryRepository(eventlog.DefaultMemoryCapacity)

	case config.StorePostgres:
		pool, err := database.NewPool(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
		if err != nil {
			_ = stores.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnect, err)
		}
		stores.closers = append(stores.closers, func() error { pool.Close(); return nil })
		if migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				_ = stores.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
			}
		}
		stores.Profiles = postgres.NewProfileStore(pool)
		stores.EventLog = postgres.NewEventLogRepository(pool)
		stores.Ready = pool

	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), DirPermission); err != nil {
			_ = stores.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDir, err)
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath, codec)
		if err != nil {
			_ = stores.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		stores.closers = append(stores.closers, store.Close)
		stores.Profiles = store
		stores.EventLog = store.EventLog()
		stores.Ready = store

	default:
		_ = stores.Close()
		return nil, fmt.Errorf(ErrFmtUnknownDriver, cfg.StoreDriver)
	}

	slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
	return stores, nil
}
