package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/ecoleta/pkg/app"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	"github.com/ghuser/ecoleta/services/item/application/handlers"
	appsvcs "github.com/ghuser/ecoleta/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a.ImageURLs, a.Logger)
}

// Mount registers item endpoints backed by already wired services.
func Mount(r chi.Router, svcs *appsvcs.Services, urls *storage.URLBuilder, log logger.Logger) {
	r.Get("/items", handlers.NewListItemsHandler(svcs, urls, log).Execute)
}
