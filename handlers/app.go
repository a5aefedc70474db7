package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"payflow/middleware"
	"payflow/services"
)

// NewApp builds the fiber app with the middleware stack and every route.
func NewApp(svc *services.Services, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "PayFlow",
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	New(svc, logger).RegisterRoutes(app)
	return app
}
