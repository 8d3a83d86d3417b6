package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	pkgcache "github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/telemetry"
	pointdomain "github.com/ghuser/ecoleta/services/point/domain"
	"github.com/ghuser/ecoleta/services/point/domain/models"
	"github.com/ghuser/ecoleta/services/point/domain/repositories"
	domainsvcs "github.com/ghuser/ecoleta/services/point/domain/services"
)

// CreatePointInput carries the already schema-validated creation fields.
type CreatePointInput struct {
	Image     string
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	// Items is the raw comma-separated id list, e.g. "1,3,5".
	Items string
}

// PointService orchestrates creation and retrieval of collection points.
// Event publishing is handled by the repository layer (outbox pattern).
// Detail reads are served from Redis when available.
type PointService struct {
	repo    repositories.PointRepository
	cache   *pkgcache.PointCache
	log     logger.Logger
	created metric.Int64Counter
}

// NewPointService returns a PointService wired with the given repository and
// cache. pointCache may be nil.
func NewPointService(repo repositories.PointRepository, pointCache *pkgcache.PointCache, log logger.Logger) *PointService {
	created, err := telemetry.Meter("github.com/ghuser/ecoleta/services/point").Int64Counter(
		"ecoleta.points.created",
		metric.WithDescription("Collection points registered"),
	)
	if err != nil {
		log.Warn("points.created counter unavailable", "error", err)
		created = noop.Int64Counter{}
	}
	return &PointService{repo: repo, cache: pointCache, log: log, created: created}
}

// Create validates and persists a Point with its item associations.
// The repository publishes PointCreatedEvent in the same transaction.
func (s *PointService) Create(ctx context.Context, in CreatePointInput) (*models.Point, error) {
	if in.Image == "" {
		return nil, pointdomain.ErrImageRequired
	}

	itemIDs, err := models.ParseItemIDs(in.Items)
	if err != nil {
		return nil, err
	}

	p := models.NewPoint(in.Image, in.Name, in.Email, in.Whatsapp, in.Latitude, in.Longitude, in.City, in.UF, itemIDs)
	if err := domainsvcs.ValidatePointForCreation(p); err != nil {
		return nil, fmt.Errorf("%w: %w", pointdomain.ErrInvalidPoint, err)
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save point: %w", err)
	}

	s.created.Add(ctx, 1, metric.WithAttributes(attribute.String("uf", p.UF)))
	s.log.InfoContext(ctx, "point created", "point_id", p.ID, "items", len(p.ItemIDs))
	return p, nil
}

// Get returns a point with its items using a read-through cache:
//  1. Check Redis first.
//  2. On miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *PointService) Get(ctx context.Context, id int64) (*models.PointDetail, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return detailFromCache(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "point cache read failed", "point_id", id, "error", err)
		}
	}

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get point: %w", err)
	}

	if s.cache != nil {
		warmCtx := context.WithoutCancel(ctx)
		go func() {
			if err := s.cache.Set(warmCtx, detailToCache(detail)); err != nil {
				s.log.WarnContext(warmCtx, "point cache warm failed", "point_id", id, "error", err)
			}
		}()
	}

	return detail, nil
}

// List returns the points matching filter.
func (s *PointService) List(ctx context.Context, filter repositories.PointFilter) ([]*models.Point, error) {
	points, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	return points, nil
}

// Warm loads the point from Postgres and stores it in the cache. The worker
// calls it for every point.created event. Idempotent.
func (s *PointService) Warm(ctx context.Context, id int64) error {
	if s.cache == nil {
		return nil
	}
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("warm point %d: %w", id, err)
	}
	if err := s.cache.Set(ctx, detailToCache(detail)); err != nil {
		return fmt.Errorf("warm point %d: %w", id, err)
	}
	return nil
}

func detailToCache(d *models.PointDetail) *pkgcache.CachedPoint {
	p := d.Point
	items := make([]pkgcache.CachedItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = pkgcache.CachedItem{ID: it.ID, Title: it.Title, Image: it.Image}
	}
	return &pkgcache.CachedPoint{
		ID:        p.ID,
		Image:     p.Image,
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		UF:        p.UF,
		Items:     items,
	}
}

func detailFromCache(c *pkgcache.CachedPoint) *models.PointDetail {
	items := make([]models.AcceptedItem, len(c.Items))
	ids := make([]int64, len(c.Items))
	for i, it := range c.Items {
		items[i] = models.AcceptedItem{ID: it.ID, Title: it.Title, Image: it.Image}
		ids[i] = it.ID
	}
	return &models.PointDetail{
		Point: &models.Point{
			ID:        c.ID,
			Image:     c.Image,
			Name:      c.Name,
			Email:     c.Email,
			Whatsapp:  c.Whatsapp,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
			City:      c.City,
			UF:        c.UF,
			ItemIDs:   ids,
		},
		Items: items,
	}
}
