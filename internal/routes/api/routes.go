package api

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Session routes
	apiGroup.Post("/sessions", CreateSession)
	apiGroup.Get("/sessions", ListSessions)
	apiGroup.Get("/sessions/:id", GetSession)
	apiGroup.Delete("/sessions/:id", DeleteSession)

	// Game routes
	apiGroup.Post("/sessions/:id/moves", PlayMove)
	apiGroup.Post("/sessions/:id/reset", ResetSession)
	apiGroup.Put("/sessions/:id/players", SetPlayers)
	apiGroup.Get("/sessions/:id/hints", GetHints)
}
