package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stephentim/Reversi/internal/othello"
)

func TestEvaluator_Opening(t *testing.T) {
	evaluator := NewEvaluator()
	board := othello.NewBoard()

	// The opening is symmetric, so neither side is ahead.
	require.Equal(t, 0, evaluator.Evaluate(board, othello.Black))
	require.Equal(t, 0, evaluator.Evaluate(board, othello.White))
}

func TestEvaluator_Antisymmetric(t *testing.T) {
	evaluator := NewEvaluator()

	// Swapping the perspective negates the score, on any board.
	board := othello.NewBoard()
	player := othello.Black

	for range 12 {
		moves := board.LegalMoves(player)
		if len(moves) == 0 {
			break
		}
		board = board.ApplyMove(moves[0].Row, moves[0].Col, player)
		player = player.Opposite()

		black := evaluator.Evaluate(board, othello.Black)
		white := evaluator.Evaluate(board, othello.White)
		require.Equal(t, black, -white)
	}
}

func TestEvaluator_CornerOnly(t *testing.T) {
	evaluator := NewEvaluator()

	// A lone black disc on a1: 100 positional, 50 corner, no mobility.
	board := othello.NewBoardMust(1, 0)
	require.Equal(t, 150, evaluator.Evaluate(board, othello.Black))
	require.Equal(t, -150, evaluator.Evaluate(board, othello.White))
}

func TestEvaluator_AllTerms(t *testing.T) {
	evaluator := NewEvaluator()

	// Black on a1, white on b2. Black threatens c3 while white has no move:
	// positional 100-(-50), mobility 10*(1-0), corners 50*(1-0).
	board := othello.NewBoardMust(uint64(1)<<0, uint64(1)<<9)
	require.Equal(t, 210, evaluator.Evaluate(board, othello.Black))
}

func TestEvaluator_ZeroWeights(t *testing.T) {
	evaluator := NewEvaluatorWithWeights([8][8]int{})

	// Black on c1 and a3, white on b1 and a2. Black has one legal move (a1)
	// while white has two (d1 and a4), so mobility gives -10. No corners.
	black := uint64(1)<<2 | uint64(1)<<16
	white := uint64(1)<<1 | uint64(1)<<8
	board := othello.NewBoardMust(black, white)

	require.Equal(t, -10, evaluator.Evaluate(board, othello.Black))
	require.Equal(t, 10, evaluator.Evaluate(board, othello.White))

	// With zero weights a lone corner is worth exactly the stability bonus.
	corner := othello.NewBoardMust(1, 0)
	require.Equal(t, 50, evaluator.Evaluate(corner, othello.Black))
}

func TestEvaluator_WeightMatrixSymmetry(t *testing.T) {
	// The positional matrix has the same symmetries as the board: flipping
	// rows, columns or transposing must not change it.
	for row := range 8 {
		for col := range 8 {
			weight := defaultWeights[row][col]
			require.Equal(t, weight, defaultWeights[7-row][col])
			require.Equal(t, weight, defaultWeights[row][7-col])
			require.Equal(t, weight, defaultWeights[col][row])
		}
	}

	require.Equal(t, 100, defaultWeights[0][0])
	require.Equal(t, -50, defaultWeights[1][1])
}
