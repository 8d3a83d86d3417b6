package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/ecoleta/pkg/app"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	pkgvalidator "github.com/ghuser/ecoleta/pkg/validator"
	"github.com/ghuser/ecoleta/services/point/application/handlers"
	appsvcs "github.com/ghuser/ecoleta/services/point/application/services"
)

// ImageField is the multipart field carrying the point photo.
const ImageField = "image"

// PointRoutes registers point endpoints on the provided chi router.
func PointRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a.Images, a.ImageURLs, a.MaxUploadBytes, a.Logger)
}

// Mount registers point endpoints backed by already wired services.
// Creation runs the upload step, then schema validation, then the handler.
func Mount(r chi.Router, svcs *appsvcs.Services, images storage.Store, urls *storage.URLBuilder, maxUpload int64, log logger.Logger) {
	r.Route("/points", func(r chi.Router) {
		r.Get("/", handlers.NewListPointsHandler(svcs, urls, log).Execute)
		r.Get("/{id}", handlers.NewGetPointHandler(svcs, urls, log).Execute)
		r.With(
			storage.SingleFile(images, ImageField, maxUpload, log),
			pkgvalidator.Middleware[handlers.CreatePointRequest](),
		).Post("/", handlers.NewCreatePointHandler(svcs, urls, log).Execute)
	})
}
