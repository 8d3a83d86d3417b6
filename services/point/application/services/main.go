package services

import (
	"github.com/ghuser/ecoleta/pkg/app"
	"github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/services/point/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Point *PointService
}

// New wires all point application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	// Keep the interface nil when no bus is configured.
	var bus postgres.TxPublisher
	if a.EventBus != nil {
		bus = a.EventBus
	}
	repo := postgres.NewPointRepository(a.Db, bus)

	var pointCache *cache.PointCache
	if a.Redis != nil {
		pointCache = cache.NewPointCache(a.Redis)
	}
	return &Services{
		Point: NewPointService(repo, pointCache, a.Logger),
	}
}
