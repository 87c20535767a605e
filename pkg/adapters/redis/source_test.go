package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/remat/pkg/adapters/redis"
	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, opts ...redis.Option) (*redis.Source, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisSource_Contract(t *testing.T) {
	src, _ := newTestSource(t)
	ports.RunCatalogSourceContract(t, src)
}

func TestRedisSource_TTL_Expiration(t *testing.T) {
	src, mr := newTestSource(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, src.Put(ctx, domain.Definition{ID: "SteelPlate", Title: "Steel Plate"}))

	_, err := src.Get(ctx, "SteelPlate")
	require.NoError(t, err)

	// Fast forward past the TTL.
	mr.FastForward(2 * time.Second)

	_, err = src.Get(ctx, "SteelPlate")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestRedisSource_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	a := redis.NewFromClient(client, redis.WithPrefix("pipeline-a:"))
	b := redis.NewFromClient(client, redis.WithPrefix("pipeline-b:"))

	ctx := context.Background()
	require.NoError(t, a.Put(ctx, domain.Definition{ID: "SteelPlate", Title: "Steel Plate"}))

	_, err = b.Get(ctx, "SteelPlate")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	cat, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())
}
