// @title        Event Portal
// @version      1.0
// @description  Event registration portal: signup, login, event catalog and per-user registrations.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusfest/event-portal/internal/api"
	"github.com/campusfest/event-portal/internal/api/handler"
	"github.com/campusfest/event-portal/internal/api/metrics"
	"github.com/campusfest/event-portal/internal/api/middleware"
	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/service"
	mongodb "github.com/campusfest/event-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/campusfest/event-portal/internal/infrastructure/db/redis"
	"github.com/campusfest/event-portal/internal/infrastructure/session"
	"github.com/campusfest/event-portal/internal/pkg/config"
	"github.com/campusfest/event-portal/pkg/logger"
)

const (
	serviceName     = "event-portal"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// loggerOptions derives the logger settings; cfg is nil when loading it failed.
func loggerOptions(cfg *config.Config) logger.Options {
	opts := logger.Options{Service: serviceName}
	if cfg != nil {
		opts.Level = cfg.LogLevel
		opts.Pretty = cfg.IsDevelopment()
	}
	return opts
}

// run wires the process and serves until ctx is cancelled. The logger is
// initialised before any error is returned.
func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	log := logger.Init(loggerOptions(cfg))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	redisCfg := redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	rdb, err := redisdb.Connect(ctx, redisCfg)
	if err != nil {
		// The cache and the submission guard degrade without redis.
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		rdb = redisdb.NewClient(redisCfg)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()

	events := redisdb.NewCatalogCache(
		mongodb.NewEventRepository(db),
		rdb,
		cfg.Redis.CatalogTTL,
		log,
		redisdb.WithLookupRecorder(metrics.ObserveCatalogLookup),
	)

	report, err := service.SeedCatalog(ctx, events, domain.DefaultCatalog, log)
	if err != nil {
		return fmt.Errorf("seed event catalog: %w", err)
	}
	metrics.CatalogEvents.Set(float64(report.Inserted + report.Updated + report.Unchanged))

	tokens, err := session.NewJWTTokens(cfg.Session.Secret, cfg.Session.TokenTTL)
	if err != nil {
		return fmt.Errorf("session tokens: %w", err)
	}

	authService := service.NewAuthService(mongodb.NewUserRepository(db), tokens, log)
	eventService := service.NewEventService(
		events,
		mongodb.NewRegistrationRepository(db),
		redisdb.NewRegistrationGuard(rdb),
		log,
	)

	e := api.NewRouter(api.Deps{
		Auth:   authService,
		Events: eventService,
		Tokens: tokens,
		Cookie: middleware.CookieConfig{TTL: tokens.TTL(), Secure: cfg.Session.CookieSecure},
		Health: map[string]handler.CheckFunc{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Registerer:  prometheus.DefaultRegisterer,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		serveErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
