package server

import (
	"context"
	"strconv"

	"insighthub-be/internal/bootstrap"
	"insighthub-be/internal/config"
	"insighthub-be/internal/metrics"
	"insighthub-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(requestMetrics)
	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api/v1")

	c.WorkspaceController.RegisterRoutes(api)
	c.SourceController.RegisterRoutes(api)
	c.InsightController.RegisterRoutes(api)
	c.ScorecardController.RegisterRoutes(api)
}

// requestMetrics counts requests by route pattern, so ids do not explode the label set.
func requestMetrics(ctx *fiber.Ctx) error {
	err := ctx.Next()

	status := ctx.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		if ferr, ok := err.(*fiber.Error); ok {
			status = ferr.Code
		}
	}
	metrics.HttpRequestsTotal.WithLabelValues(ctx.Route().Path, strconv.Itoa(status)).Inc()
	return err
}
