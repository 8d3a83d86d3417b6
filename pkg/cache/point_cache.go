package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// PointCacheTTL is the time-to-live for cached point details.
	PointCacheTTL = time.Hour

	pointCacheKeyPrefix = "point"
)

// CachedPoint is the denormalized point detail read model: the point row plus
// the items it accepts, so a cache hit needs no join.
type CachedPoint struct {
	ID        int64        `json:"id"`
	Image     string       `json:"image"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Whatsapp  string       `json:"whatsapp"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	City      string       `json:"city"`
	UF        string       `json:"uf"`
	Items     []CachedItem `json:"items"`
}

// PointCache provides read/write operations for point detail entries.
// Key format: "point:{id}"
type PointCache struct {
	client *RedisClient
}

// NewPointCache creates a PointCache backed by r.
func NewPointCache(r *RedisClient) *PointCache {
	return &PointCache{client: r}
}

// Get retrieves a cached point detail. Returns redis.Nil when the key does
// not exist or has expired.
func (c *PointCache) Get(ctx context.Context, id int64) (*CachedPoint, error) {
	var p CachedPoint
	if err := c.client.getJSON(ctx, c.key(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Set writes a point detail with PointCacheTTL.
func (c *PointCache) Set(ctx context.Context, p *CachedPoint) error {
	return c.client.setJSON(ctx, c.key(p.ID), p, PointCacheTTL)
}

// Delete removes a cached point detail.
func (c *PointCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *PointCache) key(id int64) string {
	return fmt.Sprintf("%s:%d", pointCacheKeyPrefix, id)
}
