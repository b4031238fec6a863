package othello

import (
	"fmt"
	"strings"
)

// Piece is the content of a single board square.
type Piece int

const (
	Black Piece = iota
	White
	Empty

	// Draw aliases Empty: a finished game with equal disc counts reports
	// Empty as its winner.
	Draw = Empty
)

// Opposite returns the other color. Empty has no opposite and maps to itself.
func (p Piece) Opposite() Piece {
	switch p {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// IsPlayer reports whether p is an actual disc color.
func (p Piece) IsPlayer() bool {
	return p == Black || p == White
}

// String returns the lowercase name of the piece.
func (p Piece) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("piece(%d)", int(p))
	}
}

// ParsePiece converts a color name to a Piece. Matching is case-insensitive.
func ParsePiece(s string) (Piece, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	case "empty":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("invalid piece: %q", s)
	}
}
