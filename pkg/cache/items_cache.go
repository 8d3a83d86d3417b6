package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// ItemsCacheTTL bounds how long the catalogue listing is served from Redis.
	// The catalogue only changes through migrations.
	ItemsCacheTTL = 24 * time.Hour

	itemsCacheKey = "items:all"
)

// CachedItem is one catalogue entry as stored in Redis.
type CachedItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// ItemsCache stores the full recyclable-item catalogue under a single key.
type ItemsCache struct {
	client *RedisClient
}

// NewItemsCache creates an ItemsCache backed by r.
func NewItemsCache(r *RedisClient) *ItemsCache {
	return &ItemsCache{client: r}
}

// Get returns the cached catalogue. Returns redis.Nil on a miss.
func (c *ItemsCache) Get(ctx context.Context) ([]CachedItem, error) {
	var items []CachedItem
	if err := c.client.getJSON(ctx, itemsCacheKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Set replaces the cached catalogue.
func (c *ItemsCache) Set(ctx context.Context, items []CachedItem) error {
	return c.client.setJSON(ctx, itemsCacheKey, items, ItemsCacheTTL)
}

// Invalidate drops the cached catalogue.
func (c *ItemsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, itemsCacheKey).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
