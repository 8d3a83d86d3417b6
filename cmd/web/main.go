package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/ecoleta/pkg/cache"
	"github.com/ghuser/ecoleta/pkg/config"
	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/session"
	"github.com/ghuser/ecoleta/pkg/telemetry"
	webApi "github.com/ghuser/ecoleta/services/web/application/api"
	webSvcs "github.com/ghuser/ecoleta/services/web/application/services"
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

	log := logger.New(cfg).With("component", "web")

	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	secureCookie := cfg.IsProduction()
	var store sessions.Store
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("redis unavailable, keeping sessions in cookies", "error", err)
		store = session.NewCookieStore([]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), secureCookie)
	} else {
		defer redisClient.Close() //nolint:errcheck
		store = session.NewRedisStore(redisClient.Client(), []byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), secureCookie)
		log.Info("session store initialized", "backend", "redis")
	}

	svcs := webSvcs.New(cfg, log)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:           cfg.ServiceName + "-web",
			IsDevelopment:         cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins:    cfg.CORSAllowedOrigins,
			ContentSecurityPolicy: webApi.ContentSecurityPolicy(cfg.APIBaseURL, cfg.PublicURL),
			PermissionsPolicy:     webApi.PermissionsPolicy,
			BodyLimit:             cfg.MaxUploadBytes + 1<<20,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName+"-web"),
	)

	checks := httpx.HealthChecks{"api": svcs.Backend}
	if redisClient != nil {
		checks["redis"] = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	if err := webApi.Mount(r, svcs, session.NewFlasher(store), log); err != nil {
		log.Error("failed to load templates", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	srv := httpx.NewServer(cfg.WebAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "api", cfg.APIBaseURL, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
