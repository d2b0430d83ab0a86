// Package server builds the Fiber application for the catalog API.
package server

import (
	"time"

	"stagestyle/internal/di"
	"stagestyle/internal/handlers"
	"stagestyle/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// NewApp builds the Fiber app with middleware and every route registered.
func NewApp(c *di.Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "StageStyle API",
		ErrorHandler: middleware.ErrorHandler,
	})

	middleware.SetupMiddleware(app, c.Config.CORSAllowOrigins)

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("StageStyle API is running")
	})
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"storage":  c.Config.StorageDriver,
			"identity": c.Config.IdentityProvider,
			"events":   c.Events != nil,
		})
	})

	handlers.NewProductHandler(c.ProductService).RegisterRoutes(app, c.Guard)
	handlers.NewOrderHandler(c.OrderService).RegisterRoutes(app, c.Guard)
	handlers.NewUserHandler(c.UserService).RegisterRoutes(app, c.Guard)
	if c.Local != nil {
		handlers.NewAuthHandler(c.Local).RegisterRoutes(app)
	}

	app.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "The requested resource was not found",
		})
	})
	return app
}
