package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/campusroute/internal/pkg/metrics"
)

// RouterOptions tunes the shared middleware.
type RouterOptions struct {
	RateLimit      int           // requests per minute per IP; 0 means 120
	RequestTimeout time.Duration // per-request timeout for /v1; 0 means 15s
}

// SetupRoutes registers all REST, GraphQL and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies, opts ...RouterOptions) {
	var o RouterOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.RateLimit <= 0 {
		o.RateLimit = 120
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 15 * time.Second
	}

	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip); PNG bodies are already compressed
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/v1/routes/map.png"
		},
	}))

	// Request ID, propagated into the slog context
	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Rate limiting per IP
	app.Use(limiter.New(limiter.Config{
		Max:        o.RateLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	t := o.RequestTimeout
	v1 := app.Group("/v1")
	v1.Get("/buildings", timeout.NewWithContext(ListBuildingsHandler(deps), t))
	v1.Get("/buildings/:code", timeout.NewWithContext(GetBuildingHandler(deps), t))
	v1.Get("/offerings/:crn", timeout.NewWithContext(GetOfferingHandler(deps), t))
	v1.Get("/courses", timeout.NewWithContext(ListCoursesHandler(deps), t))
	v1.Get("/itinerary", timeout.NewWithContext(ItineraryHandler(deps), t))
	v1.Get("/routes", timeout.NewWithContext(RouteHandler(deps), t))
	v1.Get("/routes/map.png", timeout.NewWithContext(RouteMapHandler(deps), t))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket relay of route events (no timeout)
	app.Use("/v1/ws", RouteEventsGuard(deps))
	app.Get("/v1/ws/routes", websocket.New(RouteEventsHandler(deps)))
}
