package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/dmeter/dmeter-api/internal/config"
	"github.com/dmeter/dmeter-api/internal/metrics"
)

// ServiceName identifies this service in health output and the app name.
const ServiceName = "dmeter-api"

// allowedMethods is every method a browser may send cross-origin.
const allowedMethods = "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS"

// NewApp builds the application: middleware, CORS policy, the API router
// under /api and the service endpoints. Nothing is registered globally.
func NewApp(cfg *config.Config, deps *Dependencies) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(RequestIDLogMiddleware())

	if cfg.Metrics.Enabled {
		app.Use(metrics.Middleware())
	}

	// Access log resolves handler errors, so everything it wraps may fail
	// and everything outside it sees the final status.
	app.Use(AccessLogMiddleware())
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigin,
		AllowMethods:     allowedMethods,
		AllowCredentials: cfg.CORS.AllowCredentials,
		ExposeHeaders:    fiber.HeaderXRequestID,
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Get("/", RootHandler())
	app.Get("/health", HealthHandler(ServiceName))

	if cfg.Metrics.Enabled {
		app.Get("/metrics", metrics.Handler())
	}

	if err := SetupDocs(app); err != nil {
		return nil, err
	}

	RegisterRoutes(app.Group("/api"), deps, cfg.Server.RequestTimeout)

	return app, nil
}
