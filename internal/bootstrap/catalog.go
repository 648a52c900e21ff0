package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/brandish-progression/internal/catalog"
)

// LoadCatalog reads the catalog at path, or the embedded default when path is empty
func LoadCatalog(path string) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	source := path
	if path == "" {
		source = CatalogSourceEmbedded
		c, err = catalog.Default()
	} else {
		c, err = catalog.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded, "source", source, "version", c.Version())
	return c, nil
}
