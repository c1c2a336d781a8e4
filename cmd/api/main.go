package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/gururaser/real-estate-game/internal/adapters/providers/geolocation"
	"github.com/gururaser/real-estate-game/internal/adapters/session"
	"github.com/gururaser/real-estate-game/internal/api/handlers"
	"github.com/gururaser/real-estate-game/internal/api/routes"
	"github.com/gururaser/real-estate-game/internal/application/services"
	"github.com/gururaser/real-estate-game/internal/domain/providers"
	"github.com/gururaser/real-estate-game/internal/infrastructure/clients/propertyindex"
	"github.com/gururaser/real-estate-game/internal/infrastructure/clients/semanticsearch"
	"github.com/gururaser/real-estate-game/internal/infrastructure/observability"
	"github.com/gururaser/real-estate-game/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		observability.GetLogger().Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Session store: in-process LRU by default, Redis when configured
	var store providers.SessionStore
	switch cfg.Session.Store {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient, cfg.Session.TTLSeconds)
		logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis session store initialized")
	default:
		store, err = session.NewMemoryStore(cfg.Session.MaxSessions)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create session store")
		}
		logger.Info().Int("capacity", cfg.Session.MaxSessions).Msg("in-memory session store initialized")
	}

	indexClient := propertyindex.NewClient(cfg.PropertyIndex.BaseURL)
	searchClient := semanticsearch.NewClient(cfg.SemanticSearch.BaseURL)
	geoProvider := geolocation.NewHaversineProvider()

	gameService := services.NewGameService(
		store,
		indexClient,
		searchClient,
		geoProvider,
		metrics,
		cfg.Game.PageSize,
		cfg.Game.SearchLimit,
	)

	gameHandler := handlers.NewGameHandler(gameService)

	router := routes.NewRouter(
		gameHandler,
		cfg.PropertyIndex.BaseURL,
		cfg.SemanticSearch.BaseURL,
		metrics,
	)
	handler := router.SetupRoutes()

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
