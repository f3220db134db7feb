package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository"
	"github.com/ikigain/ForestOS/internal/repository/memory"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCatalog records how often the backing store is hit.
type countingCatalog struct {
	repository.CatalogRepository
	gets int
}

func (c *countingCatalog) Get(ctx context.Context, speciesID string) (*models.Plant, error) {
	c.gets++
	return c.CatalogRepository.Get(ctx, speciesID)
}

func setup(t *testing.T) (*CatalogCache, *countingCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := &countingCatalog{CatalogRepository: memory.NewStore().Catalog}
	return NewCatalogCache(backing, client, time.Hour), backing, mr
}

func TestGetReadsThrough(t *testing.T) {
	cache, backing, mr := setup(t)
	ctx := context.Background()

	first, err := cache.Get(ctx, "monstera_deliciosa")
	require.NoError(t, err)
	assert.True(t, mr.Exists(speciesKey("monstera_deliciosa")))

	second, err := cache.Get(ctx, "monstera_deliciosa")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.gets)
	assert.Equal(t, first.ScientificName, second.ScientificName)
	assert.Equal(t, first.CommonNames, second.CommonNames)
}

func TestEntriesExpire(t *testing.T) {
	cache, backing, mr := setup(t)
	ctx := context.Background()

	_, err := cache.Get(ctx, "ocimum_basilicum")
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)

	_, err = cache.Get(ctx, "ocimum_basilicum")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.gets)
}

func TestMissIsNotCached(t *testing.T) {
	cache, _, mr := setup(t)

	_, err := cache.Get(context.Background(), "unknown_species")
	assert.True(t, errors.IsNotFound(err))
	assert.False(t, mr.Exists(speciesKey("unknown_species")))
}

func TestRedisOutageFallsBack(t *testing.T) {
	cache, backing, mr := setup(t)
	mr.Close()

	plant, err := cache.Get(context.Background(), "epipremnum_aureum")
	require.NoError(t, err)
	assert.Equal(t, "Epipremnum aureum", plant.ScientificName)
	assert.Equal(t, 1, backing.gets)
}

func TestCorruptEntryIsReplaced(t *testing.T) {
	cache, backing, mr := setup(t)
	require.NoError(t, mr.Set(speciesKey("monstera_deliciosa"), "{not json"))

	plant, err := cache.Get(context.Background(), "monstera_deliciosa")
	require.NoError(t, err)
	assert.Equal(t, "Monstera deliciosa", plant.ScientificName)
	assert.Equal(t, 1, backing.gets)
}

func TestCreatePrimesCache(t *testing.T) {
	cache, _, mr := setup(t)
	light := models.LightMedium

	err := cache.Create(context.Background(), &models.Plant{
		ID: "plt_x", SpeciesID: "ficus_elastica", ScientificName: "Ficus elastica",
		CommonNames: models.StringList{"Rubber Plant"}, LightLevel: &light,
	})
	require.NoError(t, err)
	assert.True(t, mr.Exists(speciesKey("ficus_elastica")))
}
