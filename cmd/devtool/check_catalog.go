package main

import (
	"context"
	"fmt"

	"github.com/osse101/brandish-progression/internal/catalog"
)

type CheckCatalogCommand struct{}

func (c *CheckCatalogCommand) Name() string {
	return "check-catalog"
}

func (c *CheckCatalogCommand) Description() string {
	return "Validate catalog files against the schema and cross references"
}

func (c *CheckCatalogCommand) Run(_ context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: check-catalog <file.yaml> [file.yaml...]")
	}

	PrintHeader("Checking catalogs...")
	failed := 0
	for _, path := range args {
		cat, err := catalog.Load(path)
		if err != nil {
			PrintError("%s: %v", path, err)
			failed++
			continue
		}
		PrintSuccess("%s (version %s)", path, cat.Version())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d catalogs failed validation", failed, len(args))
	}
	return nil
}
