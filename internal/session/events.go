package session

import "github.com/stephentim/Reversi/internal/othello"

// EventType labels what happened to a session.
type EventType string

const (
	// EventMove is published after a move, human or AI, has been applied.
	EventMove EventType = "move"

	// EventAIThinking is published when a search starts and again when its
	// result has been applied; State.AIThinking tells the two apart.
	EventAIThinking EventType = "ai_thinking"

	// EventGameOver is published once neither side can move.
	EventGameOver EventType = "game_over"

	// EventReset is published after the session returned to the opening.
	EventReset EventType = "reset"

	// EventPlayersChanged is published when the control of a color changes.
	EventPlayersChanged EventType = "players_changed"
)

// Event is a state change notification. Move and Mover are only set for
// move events.
type Event struct {
	Type  EventType
	Move  *othello.Move
	Mover othello.Piece
	State State
}

// State is an immutable snapshot of a session.
type State struct {
	Board         othello.Board
	CurrentPlayer othello.Piece
	BlackPlayer   PlayerType
	WhitePlayer   PlayerType
	Counts        othello.Counts
	GameOver      bool

	// Winner is only meaningful when GameOver is set; Draw on equal counts.
	Winner othello.Piece

	AIThinking bool
}
