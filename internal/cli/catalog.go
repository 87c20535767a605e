package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/remat/pkg/adapters/loam"
	redissource "github.com/aretw0/remat/pkg/adapters/redis"
	"github.com/aretw0/remat/pkg/catalog"
	backend "github.com/redis/go-redis/v9"
)

// LoadCatalog resolves the catalog source from the configuration.
// Redis wins over a catalog path; a path pointing at a directory is opened as
// a loam repository, a file is parsed directly; with nothing configured the
// bundled defaults are used.
func LoadCatalog(ctx context.Context, cfg Config) (*catalog.Catalog, error) {
	if cfg.RedisURL != "" {
		redisOpts, err := backend.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := backend.NewClient(redisOpts)
		defer client.Close()

		return redissource.NewFromClient(client).Load(ctx)
	}

	if cfg.CatalogPath != "" {
		info, err := os.Stat(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("catalog path: %w", err)
		}
		if info.IsDir() {
			src, err := loam.Open(cfg.CatalogPath)
			if err != nil {
				return nil, err
			}
			return src.Load(ctx)
		}
		return catalog.Load(cfg.CatalogPath)
	}

	return catalog.Default()
}
