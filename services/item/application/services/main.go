package services

import (
	"github.com/ghuser/ecoleta/pkg/app"
	"github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db)
	var itemsCache *cache.ItemsCache
	if a.Redis != nil {
		itemsCache = cache.NewItemsCache(a.Redis)
	}
	return &Services{
		Item: NewItemService(repo, itemsCache, a.Logger),
	}
}
