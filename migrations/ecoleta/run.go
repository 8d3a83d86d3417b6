package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"time"

	"github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/pkg/config"
	"github.com/ghuser/ecoleta/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// The seed owns the item catalogue, so a cached listing may be stale now.
	rc, err := cache.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("item cache not invalidated", "error", err)
		return
	}
	defer rc.Close() //nolint:errcheck

	if err := invalidateCatalogue(context.Background(), cache.NewItemsCache(rc)); err != nil {
		slog.Warn("item cache not invalidated", "error", err)
		return
	}
	slog.Info("item cache invalidated")
}

func invalidateCatalogue(ctx context.Context, items *cache.ItemsCache) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return items.Invalidate(ctx)
}
