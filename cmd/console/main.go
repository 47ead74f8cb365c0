// Command console serves the MoniPaEp console: a session-cookie front end over
// the surveillance API.
//
// @title MoniPaEp Console API
// @version 1.0
// @description Session-cookie console over the MoniPaEp surveillance API.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"monipaep/config"
	_ "monipaep/docs"
	"monipaep/internal/adapters/api"
	"monipaep/internal/adapters/auth"
	"monipaep/internal/adapters/broadcast"
	"monipaep/internal/adapters/sanitize"
	"monipaep/internal/database"
	delivery "monipaep/internal/delivery/http"
	"monipaep/internal/delivery/http/controllers"
	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
	"monipaep/internal/metrics"
	"monipaep/internal/repository/postgres"
	"monipaep/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	cleanupInterval = time.Hour
)

func main() {
	if err := run(); err != nil {
		slog.Error("console stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		return err
	}
	logger.Info("database ready")

	store := postgres.NewCredentialRepository(db)

	broadcaster, closeBroadcaster, err := newBroadcaster(cfg, logger)
	if err != nil {
		return err
	}
	defer closeBroadcaster()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	endpoints := api.NewEndpoints(cfg.APIBaseURL, httpClient)
	registry := api.NewRegistry(api.RegistryOptions{
		BaseURL:        cfg.APIBaseURL,
		HTTPClient:     httpClient,
		Store:          store,
		Endpoints:      endpoints,
		Broadcaster:    broadcaster,
		Limiter:        api.NewLimiter(cfg.RequestInterval),
		RefreshTimeout: cfg.RefreshTimeout,
		MaxAge:         cfg.CredentialMaxAge,
		Metrics:        collector,
		Logger:         logger,
	})
	go func() {
		if err := registry.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("sign-out listener stopped", "err", err)
		}
	}()
	go cleanupExpired(ctx, store, registry, logger)

	sanitizer := sanitize.NewText()
	authService := services.NewAuthService(endpoints, store, registry, cfg.CredentialMaxAge, logger)

	router := delivery.NewRouter(delivery.RouterDeps{
		Logger:             logger,
		Store:              store,
		Decoder:            auth.NewJWTDecoder(cfg.JWTSecret),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            metrics.Handler(reg),

		Auth:            controllers.NewAuthController(logger, authService, helpers.SessionCookie{Secure: cfg.CookieSecure, MaxAge: cfg.CredentialMaxAge}),
		Patients:        controllers.NewPatientController(logger, services.NewPatientService(registry)),
		Diseases:        controllers.NewDiseaseController(logger, services.NewDiseaseService(registry)),
		Symptoms:        controllers.NewSymptomController(logger, services.NewSymptomService(registry)),
		HealthProtocols: controllers.NewHealthProtocolController(logger, services.NewHealthProtocolService(registry, sanitizer)),
		Occurrences:     controllers.NewOccurrenceController(logger, services.NewOccurrenceService(registry)),
		USMs:            controllers.NewUSMController(logger, services.NewUSMService(registry)),
		FAQs:            controllers.NewFAQController(logger, services.NewFAQService(registry, sanitizer)),
		SystemUsers:     controllers.NewSystemUserController(logger, services.NewSystemUserService(registry, endpoints)),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("console listening", "addr", server.Addr, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// newBroadcaster returns the Redis broadcaster when REDIS_URL is set and the
// in-memory one otherwise.
func newBroadcaster(cfg *config.Config, logger *slog.Logger) (domain.SignOutBroadcaster, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, sign-outs stay local to this process")
		return broadcast.NewMemory(), func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	return broadcast.NewRedis(rdb, logger), func() { _ = rdb.Close() }, nil
}

func cleanupExpired(ctx context.Context, store domain.CredentialStore, registry *api.Registry, logger *slog.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := registry.EvictExpired(now); n > 0 {
				logger.Info("evicted cached sessions", "count", n)
			}
			n, err := store.DeleteExpired(ctx, now)
			if err != nil {
				logger.Warn("failed to delete expired sessions", "err", err)
				continue
			}
			if n > 0 {
				logger.Info("deleted expired sessions", "count", n)
			}
		}
	}
}
