package ws

import (
	"encoding/json"
)

// Incoming is a request frame sent by the client. Data holds the payload
// for the event, if any: a models.MoveRequest for "drop_piece" and a
// models.PlayersRequest for "set_players".
type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is a frame sent to the client. Replies carry the id of the
// request they answer; session events pushed by the server carry the event
// name and no id.
type Outgoing struct {
	Event string `json:"event,omitempty"`
	ID    int    `json:"id,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
