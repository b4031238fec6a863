package ai

import (
	"math/bits"

	"github.com/stephentim/Reversi/internal/othello"
)

// cornerMask covers a1, h1, a8 and h8.
const cornerMask uint64 = 0x8100000000000081

const (
	mobilityWeight = 10
	cornerWeight   = 50
)

// defaultWeights is the positional weight matrix. Corners are worth the
// most, squares next to corners hand the corner to the opponent and are
// penalized.
var defaultWeights = [8][8]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// Evaluator scores a board from a fixed perspective: positive is good for
// that side. The score combines positional weights, mobility and corner
// ownership.
type Evaluator struct {
	weights [8][8]int
}

// NewEvaluator creates an evaluator with the default weight matrix.
func NewEvaluator() *Evaluator {
	return &Evaluator{weights: defaultWeights}
}

// NewEvaluatorWithWeights creates an evaluator with a custom weight matrix.
// This is mostly useful for testing the mobility and corner terms in
// isolation.
func NewEvaluatorWithWeights(weights [8][8]int) *Evaluator {
	return &Evaluator{weights: weights}
}

// Evaluate returns the heuristic score of the board as seen by perspective.
func (e *Evaluator) Evaluate(board othello.Board, perspective othello.Piece) int {
	opponent := perspective.Opposite()

	score := 0

	for mask := board.Discs(perspective); mask != 0; mask &= mask - 1 {
		index := bits.TrailingZeros64(mask)
		score += e.weights[index/othello.BoardSize][index%othello.BoardSize]
	}

	for mask := board.Discs(opponent); mask != 0; mask &= mask - 1 {
		index := bits.TrailingZeros64(mask)
		score -= e.weights[index/othello.BoardSize][index%othello.BoardSize]
	}

	moveDiff := board.LegalMoveCount(perspective) - board.LegalMoveCount(opponent)
	score += mobilityWeight * moveDiff

	ownCorners := bits.OnesCount64(board.Discs(perspective) & cornerMask)
	opponentCorners := bits.OnesCount64(board.Discs(opponent) & cornerMask)
	score += cornerWeight * (ownCorners - opponentCorners)

	return score
}
