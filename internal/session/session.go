package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/stephentim/Reversi/internal/ai"
	"github.com/stephentim/Reversi/internal/othello"
)

var (
	// ErrGameOver is returned for moves on a finished game.
	ErrGameOver = errors.New("session: game is over")

	// ErrAIThinking is returned for moves while a search is in flight.
	ErrAIThinking = errors.New("session: ai is thinking")

	// ErrIllegalMove is returned when the current player cannot play the
	// requested square.
	ErrIllegalMove = errors.New("session: illegal move")
)

// subscriberBuffer is the event channel capacity per subscriber. Slow
// subscribers lose events rather than block the session.
const subscriberBuffer = 64

// Session owns a single authoritative board and drives one game of Othello.
// All state changes go through one mutex; AI searches run on a board
// snapshot off the interactive path and merge their move back through the
// same application path human moves take.
type Session struct {
	mu sync.Mutex

	board         othello.Board
	currentPlayer othello.Piece
	blackPlayer   PlayerType
	whitePlayer   PlayerType
	gameOver      bool
	winner        othello.Piece
	aiThinking    bool

	// generation invalidates in-flight search results after a reset.
	generation uint64

	searcher *ai.Searcher

	// searchDone is closed once the most recently dispatched search is
	// finished with the searcher. The searcher is shared by all searches of
	// a session, so the next search waits for it before starting.
	searchDone chan struct{}

	subscribers      map[int]chan Event
	nextSubscriberID int
}

// Option configures a Session.
type Option func(*Session)

// WithSearcher replaces the default searcher. Tests inject one with a fixed
// random seed.
func WithSearcher(searcher *ai.Searcher) Option {
	return func(s *Session) {
		if searcher != nil {
			s.searcher = searcher
		}
	}
}

// WithStart overrides the opening position and the side to move.
func WithStart(board othello.Board, mover othello.Piece) Option {
	return func(s *Session) {
		s.board = board
		if mover.IsPlayer() {
			s.currentPlayer = mover
		}
	}
}

// NewSession creates a session on the standard opening with Black to move.
// If Black is AI controlled the first search starts immediately.
func NewSession(black, white PlayerType, options ...Option) *Session {
	s := &Session{
		board:         othello.NewBoard(),
		currentPlayer: othello.Black,
		blackPlayer:   black,
		whitePlayer:   white,
		winner:        othello.Draw,
		subscribers:   make(map[int]chan Event),
	}

	for _, option := range options {
		option(s)
	}

	if s.searcher == nil {
		s.searcher = ai.NewSearcher()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A custom start may leave the first player without a move, or without
	// a game at all.
	s.advanceTurnLocked(s.currentPlayer.Opposite())
	s.maybeStartAILocked()

	return s
}

// DropPiece plays the current player's piece at (row, col). It returns an
// error when the game is over, while a search is in flight, or when the
// move is illegal; state is unchanged in all three cases.
func (s *Session) DropPiece(row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return ErrGameOver
	}

	if s.aiThinking {
		return ErrAIThinking
	}

	if !s.board.IsLegalMove(row, col, s.currentPlayer) {
		return ErrIllegalMove
	}

	s.applyMoveLocked(row, col)
	s.maybeStartAILocked()

	return nil
}

// Reset restores the standard opening and gives Black the turn. A search
// still in flight is abandoned: its result is discarded on arrival.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.board = othello.NewBoard()
	s.currentPlayer = othello.Black
	s.gameOver = false
	s.winner = othello.Draw
	s.aiThinking = false

	s.advanceTurnLocked(othello.White)

	slog.Info("session reset", "black", s.blackPlayer, "white", s.whitePlayer)
	s.publishLocked(Event{Type: EventReset, State: s.stateLocked()})

	s.maybeStartAILocked()
}

// SetBlackPlayer changes who controls Black, effective from the next turn
// evaluation. A search already in flight is never interrupted.
func (s *Session) SetBlackPlayer(player PlayerType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blackPlayer == player {
		return
	}

	s.blackPlayer = player
	s.publishLocked(Event{Type: EventPlayersChanged, State: s.stateLocked()})
}

// SetWhitePlayer changes who controls White, effective from the next turn
// evaluation.
func (s *Session) SetWhitePlayer(player PlayerType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.whitePlayer == player {
		return
	}

	s.whitePlayer = player
	s.publishLocked(Event{Type: EventPlayersChanged, State: s.stateLocked()})
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Board returns the current board.
func (s *Session) Board() othello.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// CurrentPlayer returns the side to move.
func (s *Session) CurrentPlayer() othello.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPlayer
}

// Scores returns the piece counts.
func (s *Session) Scores() othello.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Counts()
}

// IsGameOver reports whether the game ended, and the winner if it did.
func (s *Session) IsGameOver() (bool, othello.Piece) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver, s.winner
}

// AIThinking reports whether a search is in flight.
func (s *Session) AIThinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiThinking
}

// IsLegalMove checks a move for an arbitrary player, for move hints.
func (s *Session) IsLegalMove(row, col int, player othello.Piece) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.IsLegalMove(row, col, player)
}

// LegalMoves returns the current player's legal moves, empty once the game
// is over.
func (s *Session) LegalMoves() []othello.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return nil
	}
	return s.board.LegalMoves(s.currentPlayer)
}

// Subscribe registers an event channel. The cancel function must be called
// when the subscriber goes away.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubscriberID
	s.nextSubscriberID++

	ch := make(chan Event, subscriberBuffer)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
	}

	return ch, cancel
}

// Close drops all subscribers and discards any in-flight search result.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.aiThinking = false

	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

// applyMoveLocked applies a move for the current player, advances the turn
// and publishes the resulting events. The caller guarantees legality.
func (s *Session) applyMoveLocked(row, col int) {
	mover := s.currentPlayer
	move := othello.Move{Row: row, Col: col}

	s.board = s.board.ApplyMove(row, col, mover)
	s.advanceTurnLocked(mover)

	slog.Debug("move applied",
		"move", move.Field(),
		"mover", mover,
		"next", s.currentPlayer,
		"board", s.board,
	)

	s.publishLocked(Event{Type: EventMove, Move: &move, Mover: mover, State: s.stateLocked()})

	if s.gameOver {
		counts := s.board.Counts()
		slog.Info("game over", "winner", s.winner, "black", counts.Black, "white", counts.White)
		s.publishLocked(Event{Type: EventGameOver, State: s.stateLocked()})
	}
}

// advanceTurnLocked decides who moves after mover played: the opponent if
// it can move, otherwise mover again (forced pass), otherwise nobody and
// the game is over.
func (s *Session) advanceTurnLocked(mover othello.Piece) {
	opponent := mover.Opposite()

	switch {
	case s.board.HasAnyLegalMove(opponent):
		s.currentPlayer = opponent
	case s.board.HasAnyLegalMove(mover):
		s.currentPlayer = mover
	default:
		s.gameOver = true
		s.winner = s.resolveWinnerLocked()
	}
}

// resolveWinnerLocked returns the side with more discs, or Draw.
func (s *Session) resolveWinnerLocked() othello.Piece {
	counts := s.board.Counts()

	switch {
	case counts.Black > counts.White:
		return othello.Black
	case counts.White > counts.Black:
		return othello.White
	default:
		return othello.Draw
	}
}

// maybeStartAILocked dispatches a search when the side to move is AI
// controlled. The search runs on a snapshot; only the chosen move crosses
// back into the session.
func (s *Session) maybeStartAILocked() {
	if s.gameOver {
		return
	}

	player := s.playerTypeLocked(s.currentPlayer)
	if !player.IsAI() {
		return
	}

	s.aiThinking = true
	s.publishLocked(Event{Type: EventAIThinking, State: s.stateLocked()})

	board := s.board
	mover := s.currentPlayer
	depth := player.SearchDepth()
	generation := s.generation

	prev := s.searchDone
	done := make(chan struct{})
	s.searchDone = done

	slog.Debug("search started", "mover", mover, "depth", depth, "board", board)

	go s.runSearch(board, mover, depth, generation, prev, done)
}

// runSearch computes an AI move off the interactive path and merges it back
// through the same application path human moves take. Searches are chained:
// each waits for its predecessor to finish with the shared searcher, and a
// search whose generation went stale while waiting skips the computation.
func (s *Session) runSearch(board othello.Board, mover othello.Piece, depth int, generation uint64, prev <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	if prev != nil {
		<-prev
	}

	s.mu.Lock()
	stale := s.generation != generation
	s.mu.Unlock()

	if stale {
		slog.Debug("skipping stale search", "mover", mover)
		return
	}

	start := time.Now()
	move, ok := s.searcher.ChooseMove(board, mover, depth)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		slog.Debug("discarding stale search result", "mover", mover)
		return
	}

	if !ok {
		// Searches only start for a side with a legal move.
		slog.Warn("search returned no move", "mover", mover, "board", board)
		s.aiThinking = false
		s.publishLocked(Event{Type: EventAIThinking, State: s.stateLocked()})
		return
	}

	slog.Debug("search finished",
		"mover", mover,
		"move", move.Field(),
		"depth", depth,
		"nodes", s.searcher.Nodes(),
		"duration", time.Since(start),
	)

	s.applyMoveLocked(move.Row, move.Col)

	s.aiThinking = false
	s.publishLocked(Event{Type: EventAIThinking, State: s.stateLocked()})

	s.maybeStartAILocked()
}

// playerTypeLocked returns who controls the given color.
func (s *Session) playerTypeLocked(p othello.Piece) PlayerType {
	if p == othello.Black {
		return s.blackPlayer
	}
	return s.whitePlayer
}

// stateLocked builds a snapshot of the session.
func (s *Session) stateLocked() State {
	return State{
		Board:         s.board,
		CurrentPlayer: s.currentPlayer,
		BlackPlayer:   s.blackPlayer,
		WhitePlayer:   s.whitePlayer,
		Counts:        s.board.Counts(),
		GameOver:      s.gameOver,
		Winner:        s.winner,
		AIThinking:    s.aiThinking,
	}
}

// publishLocked sends an event to every subscriber, dropping it for any
// subscriber whose buffer is full.
func (s *Session) publishLocked(event Event) {
	for id, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			slog.Warn("dropping event for slow subscriber", "subscriber", id, "event", event.Type)
		}
	}
}
