// Package loam adapts a Loam markdown repository into a catalog source, so
// artists can curate material definitions as plain markdown files with
// frontmatter (one file per item id).
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
)

// Source implements ports.CatalogSource over a loam repository. The
// repository is opened read-only; curation happens through normal file edits.
type Source struct {
	repo *loam.TypedRepository[MaterialMetadata]
}

// New creates a Source from an existing typed repository.
func New(repo *loam.TypedRepository[MaterialMetadata]) *Source {
	return &Source{repo: repo}
}

// Open initializes a loam repository at path and wraps it as a Source.
// Strict mode keeps numeric frontmatter types consistent across adapters.
func Open(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[MaterialMetadata](repo)), nil
}

// Get retrieves one definition; the document id doubles as the item id.
func (s *Source) Get(ctx context.Context, id string) (domain.Definition, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%w: %s", domain.ErrMaterialNotFound, id)
	}
	return toDefinition(doc.ID, doc.Data), nil
}

// Load lists every material document and materializes the catalog.
func (s *Source) Load(ctx context.Context) (*catalog.Catalog, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	defs := make([]domain.Definition, 0, len(docs))
	for _, doc := range docs {
		defs = append(defs, toDefinition(doc.ID, doc.Data))
	}
	return catalog.New(defs...), nil
}

func toDefinition(docID string, meta MaterialMetadata) domain.Definition {
	id := meta.ID
	if id == "" {
		id = trimExtension(docID)
	}

	title := meta.Title
	if title == "" {
		title = id
	}

	return domain.Definition{
		ID:         id,
		Title:      title,
		Attributes: meta.Attributes,
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
