package api

import (
	"time"

	"github.com/bilgisen/spacetraveling/internal/metrics"
	"github.com/bilgisen/spacetraveling/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Options configures the routes outside the page handlers.
type Options struct {
	// Registry backs /metrics. A nil Registry disables the route.
	Registry     *prom.Registry
	MetricsToken string
	Timeout      time.Duration
}

// NewApp creates the fiber app serving the site.
func NewApp(h *Handlers, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           opts.Timeout,
		WriteTimeout:          opts.Timeout,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          h.ErrorHandler,
		DisableStartupMessage: true,
	})

	SetupRoutes(app, h, opts)
	return app
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers, opts Options) {
	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	// Pages
	app.Get("/", h.Home)
	app.Get("/post/:slug", h.Post)
	// Exported pages served from another origin load more posts from here.
	app.Use("/posts", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: fiber.MethodGet,
		AllowHeaders: "HX-Request, HX-Current-URL, HX-Target, HX-Trigger, HX-Trigger-Name",
	}))
	app.Get("/posts", middleware.ValidateQuery[CursorQuery](), h.LoadMore)

	// API group with versioning
	api := app.Group("/api/v1")
	api.Get("/health", h.HealthCheck)

	if opts.Registry != nil {
		app.Get("/metrics",
			middleware.StaticToken(opts.MetricsToken),
			adaptor.HTTPHandler(metrics.HTTPHandler(opts.Registry)),
		)
	}

	// 404 Handler
	app.Use(h.NotFound)
}
