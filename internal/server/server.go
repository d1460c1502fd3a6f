package server

import (
	"log"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"storeboost/internal/bootstrap"
	"storeboost/internal/config"
	"storeboost/internal/pkg/serverutils"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config, app *bootstrap.App) *Server {
	fiberApp := fiber.New(fiber.Config{
		BodyLimit: 2 * 1024 * 1024, // settings blobs are small
	})

	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	fiberApp.Use(otelfiber.Middleware())
	fiberApp.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(fiberApp, app)

	return &Server{app: fiberApp, cfg: cfg}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(fiberApp *fiber.App, app *bootstrap.App) {
	api := fiberApp.Group("/api")

	app.FeatureController.RegisterRoutes(api)
	app.EntityController.RegisterRoutes(api)
	app.AdminController.RegisterRoutes(api)
}
