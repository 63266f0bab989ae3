package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ZvonimirSimic/weather-service/internal/api/http/handlers"
	"github.com/ZvonimirSimic/weather-service/internal/auth"
	"github.com/ZvonimirSimic/weather-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Weather        *handlers.WeatherHandler
	Searches       *handlers.SearchesHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	// Forecast works anonymously but attributes searches when a valid
	// token is attached.
	api.Get("/forecast/:city", cfg.AuthMiddleware.Optional, cfg.Weather.Forecast)
	api.Get("/weather/location", cfg.Weather.Location)

	protected := api.Group("", cfg.AuthMiddleware.Require)
	protected.Get("/searches/me", cfg.Searches.Me)
	protected.Get("/stats/top-cities", cfg.Stats.TopCities)
	protected.Get("/stats/recent", cfg.Stats.Recent)
	protected.Get("/stats/conditions", cfg.Stats.Conditions)
	protected.Get("/protected", cfg.Auth.Protected)
}
