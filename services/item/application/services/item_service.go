package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/services/item/domain/models"
	"github.com/ghuser/ecoleta/services/item/domain/repositories"
)

// ItemService serves the item catalogue. Reads go through Redis when a cache
// is configured.
type ItemService struct {
	repo  repositories.ItemRepository
	cache *pkgcache.ItemsCache
	log   logger.Logger
}

// NewItemService returns an ItemService wired with the given repository and
// cache. itemsCache may be nil.
func NewItemService(repo repositories.ItemRepository, itemsCache *pkgcache.ItemsCache, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, cache: itemsCache, log: log}
}

// List returns the catalogue using a read-through cache:
//  1. Check Redis first.
//  2. On miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil {
			return fromCache(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "items cache read failed", "error", err)
		}
	}

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if s.cache != nil {
		warmCtx := context.WithoutCancel(ctx)
		go func() {
			if err := s.cache.Set(warmCtx, toCache(items)); err != nil {
				s.log.WarnContext(warmCtx, "items cache warm failed", "error", err)
			}
		}()
	}

	return items, nil
}

func toCache(items []*models.Item) []pkgcache.CachedItem {
	out := make([]pkgcache.CachedItem, len(items))
	for i, it := range items {
		out[i] = pkgcache.CachedItem{ID: it.ID, Title: it.Title, Image: it.Image}
	}
	return out
}

func fromCache(cached []pkgcache.CachedItem) []*models.Item {
	out := make([]*models.Item, len(cached))
	for i, c := range cached {
		out[i] = &models.Item{ID: c.ID, Title: c.Title, Image: c.Image}
	}
	return out
}
