package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"

	"github.com/stephentim/Reversi/internal/models"
	"github.com/stephentim/Reversi/internal/session"
)

// Handler serves one websocket connection bound to a single session. It
// answers request frames and pushes session events as they are published.
type Handler struct {
	ws        *websocket.Conn
	sessionID string
	session   *session.Session
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, sessionID string, session *session.Session) *Handler {
	return &Handler{ws: ws, sessionID: sessionID, session: session}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case "drop_piece":
		return h.handleDropPiece(req)
	case "reset":
		return h.handleReset(req)
	case "set_players":
		return h.handleSetPlayers(req)
	case "state":
		return h.stateReply(req), nil
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle pumps the connection: request frames are answered in arrival order
// and session events are pushed as they happen. All writes go through this
// goroutine. It returns when the client disconnects, the session is closed
// or a malformed frame arrives.
func (h *Handler) Handle() error {
	events, cancel := h.session.Subscribe()
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	incoming := make(chan Incoming)
	readErr := make(chan error, 1)

	go func() {
		for {
			req, err := h.readMessage()
			if err != nil {
				select {
				case readErr <- err:
				case <-done:
				}
				return
			}

			select {
			case incoming <- *req:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case err := <-readErr:
			return err
		case req := <-incoming:
			resp, err := h.handleMessage(&req)
			if err != nil {
				return fmt.Errorf("ws handle error: %w", err)
			}

			if err = h.writeMessage(resp); err != nil {
				return fmt.Errorf("ws write error: %w", err)
			}
		case event, ok := <-events:
			if !ok {
				return nil
			}

			push := &Outgoing{
				Event: string(event.Type),
				Data:  models.NewEventResponse(h.sessionID, event),
			}
			if err := h.writeMessage(push); err != nil {
				return fmt.Errorf("ws write error: %w", err)
			}
		}
	}
}

func (h *Handler) handleDropPiece(req *Incoming) (*Outgoing, error) {
	var reqData models.MoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("drop_piece request unmarshal error: %w", err)
	}

	row, col, err := reqData.Coordinates()
	if err != nil {
		return h.errorReply(req, err), nil
	}

	if err := h.session.DropPiece(row, col); err != nil {
		return h.errorReply(req, err), nil
	}

	return h.stateReply(req), nil
}

func (h *Handler) handleReset(req *Incoming) (*Outgoing, error) {
	h.session.Reset()
	return h.stateReply(req), nil
}

func (h *Handler) handleSetPlayers(req *Incoming) (*Outgoing, error) {
	var reqData models.PlayersRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("set_players request unmarshal error: %w", err)
	}

	black, white, err := reqData.PlayerTypes()
	if err != nil {
		return h.errorReply(req, err), nil
	}

	h.session.SetBlackPlayer(black)
	h.session.SetWhitePlayer(white)

	return h.stateReply(req), nil
}

// stateReply answers a request with a snapshot of the session.
func (h *Handler) stateReply(req *Incoming) *Outgoing {
	return &Outgoing{
		ID:   req.ID,
		Data: models.NewSessionResponse(h.sessionID, h.session.State()),
	}
}

// errorReply reports a rejected request without closing the connection.
func (h *Handler) errorReply(req *Incoming, err error) *Outgoing {
	return &Outgoing{
		ID:    req.ID,
		Error: err.Error(),
	}
}
