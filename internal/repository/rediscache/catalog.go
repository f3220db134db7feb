// Package rediscache puts a Redis read-through cache in front of the plant
// catalog. Catalog rows are reference data, so entries expire on a TTL and
// are never invalidated by user traffic.
package rediscache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const keyPrefix = "forestos:catalog:species:"

// Client is the subset of go-redis the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// CatalogCache wraps a CatalogRepository. Redis failures degrade to the
// underlying repository; they never fail a request.
type CatalogCache struct {
	repository.CatalogRepository
	client Client
	ttl    time.Duration
}

func NewCatalogCache(next repository.CatalogRepository, client Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{CatalogRepository: next, client: client, ttl: ttl}
}

func speciesKey(speciesID string) string {
	return keyPrefix + speciesID
}

func (c *CatalogCache) Get(ctx context.Context, speciesID string) (*models.Plant, error) {
	key := speciesKey(speciesID)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		plant := &models.Plant{}
		if err := json.Unmarshal(raw, plant); err == nil {
			return plant, nil
		}
		nuts.L.Warnf("[CatalogCache] Dropping undecodable entry %s", key)
		c.client.Del(ctx, key)
	case !stderrors.Is(err, redis.Nil):
		nuts.L.Warnf("[CatalogCache] Redis get %s failed: %v", key, err)
	}

	plant, err := c.CatalogRepository.Get(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, plant)
	return plant, nil
}

func (c *CatalogCache) Create(ctx context.Context, plant *models.Plant) error {
	if err := c.CatalogRepository.Create(ctx, plant); err != nil {
		return err
	}
	c.store(ctx, speciesKey(plant.SpeciesID), plant)
	return nil
}

func (c *CatalogCache) store(ctx context.Context, key string, plant *models.Plant) {
	data, err := json.Marshal(plant)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[CatalogCache] Redis set %s failed: %v", key, err)
	}
}

// Ping reports whether Redis is reachable.
func (c *CatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
