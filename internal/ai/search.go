package ai

import (
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/stephentim/Reversi/internal/othello"
)

// Searcher picks moves with depth-limited minimax and alpha-beta pruning.
//
// Every node in the tree is scored from the root mover's perspective: the
// evaluation side never flips during recursion, only the maximizing flag
// does. A Searcher is not safe for concurrent use; give each worker its own.
type Searcher struct {
	evaluator *Evaluator
	rng       *rand.Rand
	nodes     uint64
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEvaluator replaces the default evaluator.
func WithEvaluator(evaluator *Evaluator) Option {
	return func(s *Searcher) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

// WithRand sets the source used to break ties between equally good root
// moves. Tests inject a fixed seed to make selection deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewSearcher creates a searcher with the default evaluator and a
// time-seeded random source.
func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{
		evaluator: NewEvaluator(),
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// ChooseMove returns the best move for player looking depth plies ahead.
// The boolean is false iff player has no legal move.
//
// When several moves share the best score, one of them is picked uniformly
// at random so play does not become predictable.
func (s *Searcher) ChooseMove(board othello.Board, player othello.Piece, depth int) (othello.Move, bool) {
	moves := board.LegalMoves(player)
	if len(moves) == 0 {
		return othello.Move{}, false
	}

	s.nodes = 0

	best := make([]othello.Move, 0, len(moves))
	bestScore := math.MinInt

	// Every root move gets a fresh alpha-beta window so that equally good
	// moves all surface with the same score.
	for _, move := range moves {
		child := board.ApplyMove(move.Row, move.Col, player)
		score := s.minimax(child, player, depth-1, math.MinInt, math.MaxInt, false)

		if score > bestScore {
			bestScore = score
			best = append(best[:0], move)
		} else if score == bestScore {
			best = append(best, move)
		}
	}

	return best[s.rng.Intn(len(best))], true
}

// Nodes returns the number of nodes visited by the last ChooseMove call.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// minimax scores board from rootPlayer's perspective. The side to move is
// rootPlayer at maximizing nodes and its opponent at minimizing nodes.
func (s *Searcher) minimax(board othello.Board, rootPlayer othello.Piece, depth, alpha, beta int, maximizing bool) int {
	s.nodes++

	side := rootPlayer
	if !maximizing {
		side = rootPlayer.Opposite()
	}

	if depth == 0 || !board.HasAnyLegalMove(side) {
		return s.evaluator.Evaluate(board, rootPlayer)
	}

	moves := board.LegalMoves(side)

	if maximizing {
		value := math.MinInt
		for _, move := range moves {
			child := board.ApplyMove(move.Row, move.Col, side)
			value = max(value, s.minimax(child, rootPlayer, depth-1, alpha, beta, false))
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return value
	}

	value := math.MaxInt
	for _, move := range moves {
		child := board.ApplyMove(move.Row, move.Col, side)
		value = min(value, s.minimax(child, rootPlayer, depth-1, alpha, beta, true))
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return value
}
