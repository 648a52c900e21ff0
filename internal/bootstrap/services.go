package bootstrap

import (
	"fmt"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/config"
	"github.com/osse101/brandish-progression/internal/player"
	"github.com/osse101/brandish-progression/internal/profile"
	"github.com/osse101/brandish-progression/internal/utils"
)

// BuildPlayerService wires the engines, the profile service and the publisher into the
// player façade. Version conflicts are reported through the publisher.
func BuildPlayerService(cfg *config.Config, c *catalog.Catalog, store profile.Store, publisher player.Publisher) (player.Service, error) {
	engines, err := player.NewEngines(c, utils.DefaultSource())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildEngines, err)
	}

	profileCfg := profile.Config{
		CacheSize:  cfg.ProfileCacheSize,
		CacheTTL:   cfg.ProfileCacheTTL,
		MaxRetries: cfg.MaxRetries,
	}
	if publisher != nil {
		profileCfg.OnConflict = player.ConflictReporter(publisher)
	}
	profiles := profile.NewService(store, c, engines.Ledger, profileCfg)

	return player.NewService(profiles, engines, publisher), nil
}
