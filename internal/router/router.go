package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/soltixdb/insight/internal/alerts"
	"github.com/soltixdb/insight/internal/config"
	"github.com/soltixdb/insight/internal/handlers"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/middleware"
	"github.com/soltixdb/insight/internal/registry"
	"github.com/soltixdb/insight/internal/source"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, src source.Source,
	reg registry.Registry, enrichment source.EnrichmentSource,
	publisher alerts.Publisher, cfg config.Config,
) *handlers.Handler {
	h := handlers.New(logger, src, reg, enrichment, publisher,
		cfg.Analysis, cfg.Alerts.SubjectPrefix)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Metric analysis routes
	v1.Post("/collections/:collection/analyze", h.Analyze)
	v1.Post("/collections/:collection/trend", h.Trend)
	v1.Post("/collections/:collection/seasonality", h.Seasonality)
	v1.Post("/collections/:collection/correlate", h.Correlate)

	// Log analysis routes
	v1.Post("/collections/:collection/logs/volume", h.LogVolume)
	v1.Post("/collections/:collection/logs/pattern", h.LogPattern)

	// Field discovery
	v1.Get("/fields", h.Fields)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, src source.Source, reg registry.Registry,
	enrichment source.EnrichmentSource, publisher alerts.Publisher,
	cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Soltix Insight",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, src, reg, enrichment, publisher, cfg)

	return app
}
