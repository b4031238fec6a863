package othello

import (
	"fmt"
	"strings"
)

// Move is a board coordinate. It is only meaningful relative to a specific
// board and acting piece.
type Move struct {
	Row int
	Col int
}

// MoveFromIndex converts a square index (0-63, row-major) to a Move.
func MoveFromIndex(index int) Move {
	return Move{Row: index / BoardSize, Col: index % BoardSize}
}

// Index returns the square index (0-63, row-major) of the move.
func (m Move) Index() int {
	return m.Row*BoardSize + m.Col
}

// Field returns the field notation of the move (e.g. "a1", "h8").
// Columns map to letters and rows to digits.
func (m Move) Field() string {
	if !WithinBounds(m.Row, m.Col) {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return string([]byte{byte('a' + m.Col), byte('1' + m.Row)})
}

// String returns the field notation of the move.
func (m Move) String() string {
	return m.Field()
}

// MoveFromField converts a field notation (e.g. "a1", "h8") to a Move.
func MoveFromField(field string) (Move, error) {
	if len(field) != 2 {
		return Move{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Move{}, fmt.Errorf("invalid field: %q", field)
	}

	col := int(field[0] - 'a')
	row := int(field[1] - '1')
	return Move{Row: row, Col: col}, nil
}
