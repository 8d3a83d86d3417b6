package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/session"
	"github.com/ghuser/ecoleta/services/web/application/handlers"
	appsvcs "github.com/ghuser/ecoleta/services/web/application/services"
)

// PermissionsPolicy lets the page ask for the device position and nothing else.
const PermissionsPolicy = "geolocation=(self), microphone=(), camera=(), usb=(), magnetometer=(), gyroscope=()"

// ContentSecurityPolicy allows Leaflet from unpkg, OpenStreetMap tiles and
// item icons served by the given origins.
func ContentSecurityPolicy(imageOrigins ...string) string {
	img := []string{"'self'", "data:", "https://unpkg.com", "https://*.tile.openstreetmap.org"}
	for _, o := range imageOrigins {
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		img = append(img, u.Scheme+"://"+u.Host)
	}
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' https://unpkg.com",
		"style-src 'self' https://unpkg.com",
		"img-src " + strings.Join(img, " "),
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ")
}

// Mount registers the frontend pages and their static assets.
func Mount(r chi.Router, svcs *appsvcs.Services, flash *session.Flasher, log logger.Logger) error {
	pages, err := handlers.NewRenderer()
	if err != nil {
		return err
	}
	create := handlers.NewCreatePointHandler(svcs, pages, flash, log)

	r.Get("/", handlers.NewHomeHandler(pages, flash, log).Execute)
	r.Get("/create-point", create.Show)
	r.Post("/create-point", create.Post)
	r.Get("/create-point/cities", create.Cities)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(handlers.Static()))))
	return nil
}
