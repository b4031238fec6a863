package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stephentim/Reversi/internal/models"
	"github.com/stephentim/Reversi/internal/othello"
	"github.com/stephentim/Reversi/internal/registry"
	"github.com/stephentim/Reversi/internal/session"
)

// getRegistry returns the session registry attached to the app.
func getRegistry(c *fiber.Ctx) *registry.Registry {
	return c.Locals("registry").(*registry.Registry) //nolint: errcheck
}

// getSession resolves the session named by the id route parameter.
func getSession(c *fiber.Ctx) (*session.Session, string, error) {
	id := c.Params("id")
	sess, err := getRegistry(c).Get(id)
	return sess, id, err
}

// moveErrorStatus maps session errors to HTTP status codes.
func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, session.ErrGameOver), errors.Is(err, session.ErrAIThinking):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// CreateSession handles creation of a new game session. An empty body
// creates a human versus human game from the opening position.
func CreateSession(c *fiber.Ctx) error {
	var req models.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	black, white, err := req.PlayerTypes()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	options, err := req.StartOptions()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sess := session.NewSession(black, white, options...)
	id := getRegistry(c).Create(sess)

	return c.Status(fiber.StatusCreated).JSON(models.NewSessionResponse(id, sess.State()))
}

// ListSessions returns the ids of all live sessions, most recently active first.
func ListSessions(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.SessionListResponse{
		Sessions: getRegistry(c).IDs(),
	})
}

// GetSession returns the current state of a session.
func GetSession(c *fiber.Ctx) error {
	sess, id, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.NewSessionResponse(id, sess.State()))
}

// PlayMove applies a move for the player whose turn it is.
func PlayMove(c *fiber.Ctx) error {
	sess, id, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var req models.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	row, col, err := req.Coordinates()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := sess.DropPiece(row, col); err != nil {
		return c.Status(moveErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.NewSessionResponse(id, sess.State()))
}

// ResetSession restarts a game, keeping the player configuration.
func ResetSession(c *fiber.Ctx) error {
	sess, id, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sess.Reset()

	return c.Status(fiber.StatusOK).JSON(models.NewSessionResponse(id, sess.State()))
}

// SetPlayers reconfigures who controls each color. The change takes effect
// at the next turn change.
func SetPlayers(c *fiber.Ctx) error {
	sess, id, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var req models.PlayersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	black, white, err := req.PlayerTypes()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sess.SetBlackPlayer(black)
	sess.SetWhitePlayer(white)

	return c.Status(fiber.StatusOK).JSON(models.NewSessionResponse(id, sess.State()))
}

// GetHints returns the legal moves for the player to move, or for the
// player named by the player query parameter.
func GetHints(c *fiber.Ctx) error {
	sess, _, err := getSession(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if name := c.Query("player"); name != "" {
		player, err := othello.ParsePiece(name)
		if err != nil || !player.IsPlayer() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player must be black or white",
			})
		}

		return c.Status(fiber.StatusOK).JSON(models.NewHintsResponse(sess.Board().LegalMoves(player)))
	}

	return c.Status(fiber.StatusOK).JSON(models.NewHintsResponse(sess.LegalMoves()))
}

// DeleteSession removes a session and closes its event subscriptions.
func DeleteSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := getRegistry(c).Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
