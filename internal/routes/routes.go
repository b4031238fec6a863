package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stephentim/Reversi/internal/config"
	"github.com/stephentim/Reversi/internal/routes/api"
	"github.com/stephentim/Reversi/internal/routes/static"
	"github.com/stephentim/Reversi/internal/routes/version"
	"github.com/stephentim/Reversi/internal/routes/ws"
)

func rootHandler(c *fiber.Ctx) error {
	return c.Redirect("/static/")
}

func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	// Serve API routes
	api.SetupRoutes(app)

	// Serve websocket event streams
	ws.SetupRoutes(app)

	// Serve version info
	version.SetupRoutes(app)

	// Serve the browser UI when a static directory is configured
	if cfg.StaticDir != "" {
		static.SetupRoutes(app, cfg)
		app.Get("/", rootHandler)
	}
}
