package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/remat/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCatalogSourceContract runs a suite of tests to verify that a
// MutableCatalogSource implementation adheres to the interface contract.
func RunCatalogSourceContract(t *testing.T, src MutableCatalogSource) {
	ctx := context.Background()
	id := "contract-item-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		def := domain.Definition{
			ID:    id,
			Title: "Contract Item",
			Attributes: map[string]any{
				"category": "test",
				"mass":     float64(12),
			},
		}

		require.NoError(t, src.Put(ctx, def), "Put should not return error")

		got, err := src.Get(ctx, id)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, def.Title, got.Title)
		assert.Equal(t, "test", got.Attributes["category"])
		// Numeric attributes may round-trip through JSON; just check presence.
		assert.NotNil(t, got.Attributes["mass"])
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := src.Get(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	})

	t.Run("Load", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, src.Put(ctx, domain.Definition{ID: id1, Title: "One"}))
		require.NoError(t, src.Put(ctx, domain.Definition{ID: id2, Title: "Two"}))

		defer func() {
			_ = src.Delete(ctx, id1)
			_ = src.Delete(ctx, id2)
		}()

		cat, err := src.Load(ctx)
		require.NoError(t, err)

		_, ok := cat.Get(id1)
		assert.True(t, ok)
		_, ok = cat.Get(id2)
		assert.True(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, src.Put(ctx, domain.Definition{ID: id, Title: "Contract Item"}))

		require.NoError(t, src.Delete(ctx, id), "Delete should not return error")

		_, err := src.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrMaterialNotFound, "Get after Delete should miss")

		assert.NoError(t, src.Delete(ctx, id), "deleting an unknown id is not an error")
	})
}
