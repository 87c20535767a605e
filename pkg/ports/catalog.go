package ports

import (
	"context"

	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
)

// CatalogSource provides material definitions from some backing store: a
// file, a shared Redis instance, a markdown material library.
type CatalogSource interface {
	// Load materializes the full catalog.
	Load(ctx context.Context) (*catalog.Catalog, error)

	// Get retrieves a single definition.
	// Returns domain.ErrMaterialNotFound if the item id is unknown.
	Get(ctx context.Context, id string) (domain.Definition, error)
}

// MutableCatalogSource is a CatalogSource that can also be written, used by
// pipeline tooling that seeds or curates shared catalogs.
type MutableCatalogSource interface {
	CatalogSource

	// Put stores or replaces a definition.
	Put(ctx context.Context, def domain.Definition) error

	// Delete removes a definition. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
