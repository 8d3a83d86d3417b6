package app

import (
	"github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/pkg/database"
	"github.com/ghuser/ecoleta/pkg/events"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's Routes function during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "point created", "point_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus   // nil disables outbox publishing
	Redis    *cache.RedisClient // nil disables read caches

	Images         storage.Store
	ImageURLs      *storage.URLBuilder
	MaxUploadBytes int64
}
