package services

import (
	"time"

	"github.com/ghuser/ecoleta/pkg/config"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/telemetry"
	"github.com/ghuser/ecoleta/services/web/infrastructure/backend"
	"github.com/ghuser/ecoleta/services/web/infrastructure/ibge"
)

// outboundTimeout bounds every call to the points API and IBGE.
const outboundTimeout = 10 * time.Second

// Services is the application-layer service container for the web frontend.
type Services struct {
	Form *FormService
	// Backend is exposed for the health check.
	Backend *backend.Client
}

// New wires the frontend services with traced HTTP clients.
func New(cfg *config.Config, log logger.Logger) *Services {
	hc := telemetry.NewHTTPClient(outboundTimeout)
	api := backend.NewClient(cfg.APIBaseURL, hc)
	geo := ibge.NewClient(cfg.IBGEBaseURL, hc)
	return &Services{
		Form:    NewFormService(api, geo, api, log),
		Backend: api,
	}
}
