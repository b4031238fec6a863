package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/stephentim/Reversi/internal/registry"
	"github.com/stephentim/Reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	reg := c.Locals("registry").(*registry.Registry) //nolint: errcheck

	id := c.Params("id")
	sess, err := reg.Get(id)
	if err != nil {
		if err := c.WriteJSON(ws.Outgoing{Error: err.Error()}); err != nil {
			slog.Error("ws write error", "error", err)
		}
		return
	}

	h := ws.NewHandler(c, id, sess)
	if err := h.Handle(); err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws/:id", websocket.New(handleWs))
}
