package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/zgkmail/watchornot/watchornot-go/internal/handler"
	"github.com/zgkmail/watchornot/watchornot-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Rating  *handler.RatingHandler
	Badge   *handler.BadgeHandler
	Profile *handler.ProfileHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestID())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group, no rate limiting)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	// Rating routes
	api.Post("/ratings", h.Rating.Submit, middleware.NewRatingSubmitRateLimiter().Handler())
	api.Delete("/ratings", h.Rating.Delete, middleware.NewRatingDeleteRateLimiter().Handler())
	api.Get("/ratings/:userId", h.Rating.History, middleware.NewHistoryRateLimiter().Handler())

	// Badge routes
	api.Post("/badge/preview", h.Badge.Preview, middleware.NewPreviewRateLimiter().Handler())

	// User routes
	api.Get("/users/:userId", h.Profile.GetByUserID, middleware.NewProfileRateLimiter().Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
