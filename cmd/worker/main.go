package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/ecoleta/pkg/app"
	"github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/pkg/config"
	"github.com/ghuser/ecoleta/pkg/database"
	"github.com/ghuser/ecoleta/pkg/events"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/telemetry"
	pointSvcs "github.com/ghuser/ecoleta/services/point/application/services"
	pointdomain "github.com/ghuser/ecoleta/services/point/domain"
	pointEvents "github.com/ghuser/ecoleta/services/point/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// Cancelling ctx closes the subscriptions; EventBus.Close() (via defer)
	// waits up to 30s for in-flight handlers.
	cancel()
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	svcs := pointSvcs.New(a)

	errCh, err := a.EventBus.Subscribe(ctx, pointEvents.TopicPointCreated, handlePointCreated(svcs.Point, a.Logger))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", pointEvents.TopicPointCreated,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{pointEvents.TopicPointCreated})
	return nil
}

// pointWarmer is the part of PointService the handler needs.
type pointWarmer interface {
	Warm(ctx context.Context, id int64) error
}

// handlePointCreated returns a handler for point.created events.
// Handlers must be idempotent: EventBus retries up to 3× on failure.
// Warms the Redis point cache so the first GET /points/{id} is served from cache.
func handlePointCreated(points pointWarmer, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt pointEvents.PointCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			// Malformed payloads are acked and dropped.
			log.ErrorContext(ctx, "discarding malformed point.created", "message_id", msg.UUID, "error", err)
			return nil
		}

		if err := points.Warm(ctx, evt.PointID); err != nil {
			if errors.Is(err, pointdomain.ErrPointNotFound) {
				log.WarnContext(ctx, "point.created for unknown point", "point_id", evt.PointID)
				return nil
			}
			return fmt.Errorf("warm point %d: %w", evt.PointID, err)
		}

		log.InfoContext(ctx, "cache warmed", "point_id", evt.PointID, "city", evt.City, "uf", evt.UF)
		return nil
	}
}
