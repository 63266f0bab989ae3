package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ZvonimirSimic/weather-service/internal/api/http"
	"github.com/ZvonimirSimic/weather-service/internal/api/http/handlers"
	"github.com/ZvonimirSimic/weather-service/internal/auth"
	"github.com/ZvonimirSimic/weather-service/internal/cache"
	"github.com/ZvonimirSimic/weather-service/internal/config"
	"github.com/ZvonimirSimic/weather-service/internal/events"
	"github.com/ZvonimirSimic/weather-service/internal/observability"
	"github.com/ZvonimirSimic/weather-service/internal/persistence"
	"github.com/ZvonimirSimic/weather-service/internal/repository"
	"github.com/ZvonimirSimic/weather-service/internal/service"
	"github.com/ZvonimirSimic/weather-service/internal/weather"
	"github.com/ZvonimirSimic/weather-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	searchRepo := repository.NewSearchRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	activityService := service.NewActivityService(dispatcher, logger, metrics)
	worker.StartActivityWorker(activityService)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	weatherClient := weather.NewClient(cfg.Weather, logger)
	forecastCache := cache.NewForecastCache(redis.Client, cfg.Weather.CacheTTL(), logger)
	weatherService := service.NewWeatherService(weatherClient, forecastCache, searchRepo, dispatcher, metrics, logger)
	searchService := service.NewSearchService(searchRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Weather:        handlers.NewWeatherHandler(weatherService),
		Searches:       handlers.NewSearchesHandler(searchService),
		Stats:          handlers.NewStatsHandler(searchService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
