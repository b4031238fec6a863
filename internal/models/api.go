package models

import (
	"fmt"

	"github.com/stephentim/Reversi/internal/othello"
	"github.com/stephentim/Reversi/internal/session"
)

// PlayersRequest says who controls each color; empty strings mean human.
type PlayersRequest struct {
	BlackPlayer string `json:"black_player"`
	WhitePlayer string `json:"white_player"`
}

// PlayerTypes parses both player fields.
func (r *PlayersRequest) PlayerTypes() (black, white session.PlayerType, err error) {
	black, err = parsePlayer(r.BlackPlayer)
	if err != nil {
		return session.Human, session.Human, err
	}

	white, err = parsePlayer(r.WhitePlayer)
	if err != nil {
		return session.Human, session.Human, err
	}

	return black, white, nil
}

func parsePlayer(s string) (session.PlayerType, error) {
	if s == "" {
		return session.Human, nil
	}
	return session.ParsePlayerType(s)
}

// CreateSessionRequest is the session creation payload. Board and Turn are
// optional; when absent the game starts from the opening position.
type CreateSessionRequest struct {
	PlayersRequest
	Board string `json:"board"`
	Turn  string `json:"turn"`
}

// StartOptions resolves the optional custom start position.
func (r *CreateSessionRequest) StartOptions() ([]session.Option, error) {
	if r.Board == "" && r.Turn == "" {
		return nil, nil
	}

	board := othello.NewBoard()
	if r.Board != "" {
		var err error
		board, err = othello.NewBoardFromString(r.Board)
		if err != nil {
			return nil, err
		}
	}

	turn := othello.Black
	if r.Turn != "" {
		var err error
		turn, err = othello.ParsePiece(r.Turn)
		if err != nil {
			return nil, err
		}

		if !turn.IsPlayer() {
			return nil, fmt.Errorf("turn must be black or white: %s", r.Turn)
		}
	}

	return []session.Option{session.WithStart(board, turn)}, nil
}

// MoveRequest represents a move to play, either as coordinates or in field
// notation like "d3".
type MoveRequest struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Field string `json:"field,omitempty"`
}

// Coordinates resolves the requested square, preferring field notation when
// present.
func (r *MoveRequest) Coordinates() (row, col int, err error) {
	if r.Field != "" {
		move, err := othello.MoveFromField(r.Field)
		if err != nil {
			return 0, 0, err
		}
		return move.Row, move.Col, nil
	}

	if !othello.WithinBounds(r.Row, r.Col) {
		return 0, 0, fmt.Errorf("coordinates out of range: (%d,%d)", r.Row, r.Col)
	}

	return r.Row, r.Col, nil
}

// CountsResponse represents the piece counts of a board.
type CountsResponse struct {
	Empty int `json:"empty"`
	Black int `json:"black"`
	White int `json:"white"`
}

// SessionResponse represents a session state snapshot.
type SessionResponse struct {
	ID            string         `json:"id"`
	Grid          [][]string     `json:"grid"`
	Board         string         `json:"board"`
	CurrentPlayer string         `json:"current_player"`
	BlackPlayer   string         `json:"black_player"`
	WhitePlayer   string         `json:"white_player"`
	Counts        CountsResponse `json:"counts"`
	GameOver      bool           `json:"game_over"`
	Winner        string         `json:"winner,omitempty"`
	AIThinking    bool           `json:"ai_thinking"`
}

// NewSessionResponse builds the API representation of a session state.
func NewSessionResponse(id string, state session.State) SessionResponse {
	grid := make([][]string, othello.BoardSize)
	for row := range othello.BoardSize {
		grid[row] = make([]string, othello.BoardSize)
		for col := range othello.BoardSize {
			grid[row][col] = state.Board.Get(row, col).String()
		}
	}

	return SessionResponse{
		ID:            id,
		Grid:          grid,
		Board:         state.Board.String(),
		CurrentPlayer: state.CurrentPlayer.String(),
		BlackPlayer:   state.BlackPlayer.String(),
		WhitePlayer:   state.WhitePlayer.String(),
		Counts: CountsResponse{
			Empty: state.Counts.Empty,
			Black: state.Counts.Black,
			White: state.Counts.White,
		},
		GameOver:   state.GameOver,
		Winner:     winnerName(state),
		AIThinking: state.AIThinking,
	}
}

// winnerName maps the winner to its wire name, spelling out a draw.
func winnerName(state session.State) string {
	if !state.GameOver {
		return ""
	}

	if state.Winner == othello.Draw {
		return "draw"
	}
	return state.Winner.String()
}

// MoveResponse represents a board square in API responses.
type MoveResponse struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Field string `json:"field"`
}

// NewMoveResponse builds the API representation of a move.
func NewMoveResponse(move othello.Move) MoveResponse {
	return MoveResponse{
		Row:   move.Row,
		Col:   move.Col,
		Field: move.Field(),
	}
}

// HintsResponse lists the current player's legal moves.
type HintsResponse struct {
	Moves []MoveResponse `json:"moves"`
}

// NewHintsResponse builds a hints response from legal moves.
func NewHintsResponse(moves []othello.Move) HintsResponse {
	hints := HintsResponse{Moves: make([]MoveResponse, len(moves))}
	for i, move := range moves {
		hints.Moves[i] = NewMoveResponse(move)
	}
	return hints
}

// SessionListResponse lists known session ids, most recently active first.
type SessionListResponse struct {
	Sessions []string `json:"sessions"`
}

// EventResponse represents a session event pushed over the websocket.
type EventResponse struct {
	Type    string          `json:"type"`
	Move    *MoveResponse   `json:"move,omitempty"`
	Mover   string          `json:"mover,omitempty"`
	Session SessionResponse `json:"session"`
}

// NewEventResponse builds the API representation of a session event.
func NewEventResponse(id string, event session.Event) EventResponse {
	response := EventResponse{
		Type:    string(event.Type),
		Session: NewSessionResponse(id, event.State),
	}

	if event.Move != nil {
		move := NewMoveResponse(*event.Move)
		response.Move = &move
		response.Mover = event.Mover.String()
	}

	return response
}

// ErrorResponse is the error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VersionResponse represents the build version.
type VersionResponse struct {
	Commit string `json:"commit"`
}
