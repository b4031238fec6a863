package internal

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stephentim/Reversi/internal/config"
	"github.com/stephentim/Reversi/internal/middleware"
	"github.com/stephentim/Reversi/internal/registry"
	"github.com/stephentim/Reversi/internal/routes"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
)

func SetupApp() (*fiber.App, *config.ServerConfig, *registry.Registry) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Sessions live in memory, the registry is shared by all handlers
	reg := registry.NewRegistry(cfg.SessionTTL)

	// Make config and registry available to handlers
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("registry", reg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app, cfg)

	return app, cfg, reg
}
