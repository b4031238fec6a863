package othello

import (
	"fmt"
	"math/bits"
	"strconv"
)

const (
	// BoardSize is the side length of the board.
	BoardSize = 8

	// cellCount is the total number of squares.
	cellCount = BoardSize * BoardSize

	startBlack uint64 = 0x0000000810000000
	startWhite uint64 = 0x0000001008000000
)

// Board is an 8x8 Othello board stored as one bitboard per color.
// Square index = row*8 + col. Board is a value type: every mutation returns
// a new Board, which keeps search snapshots cheap to copy.
type Board struct {
	black uint64
	white uint64
}

// Counts holds the number of squares per occupant.
type Counts struct {
	Empty int
	Black int
	White int
}

// NewBoard creates a board with the standard Othello opening:
// White on d4 and e5, Black on e4 and d5.
func NewBoard() Board {
	return Board{black: startBlack, white: startWhite}
}

// NewBoardFromBitboards creates a board from raw color bitboards.
func NewBoardFromBitboards(black, white uint64) (Board, error) {
	if black&white != 0 {
		return Board{}, fmt.Errorf("invalid board: black and white discs overlap")
	}
	return Board{black: black, white: white}, nil
}

// NewBoardMust creates a board from raw color bitboards and panics if they
// overlap.
func NewBoardMust(black, white uint64) Board {
	b, err := NewBoardFromBitboards(black, white)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromString creates a board from a string representation:
// 32 hex characters, black bitboard followed by white bitboard.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != 32 {
		return Board{}, fmt.Errorf("board string must be 32 characters long, got %d", len(s))
	}

	black, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid black bitboard: %w", err)
	}

	white, err := strconv.ParseUint(s[16:32], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid white bitboard: %w", err)
	}

	return NewBoardFromBitboards(black, white)
}

// String returns the string representation of the board.
func (b Board) String() string {
	return fmt.Sprintf("%016x%016x", b.black, b.white)
}

// WithinBounds checks if both coordinates are in [0,8).
func WithinBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Get returns the piece at the given square. Out-of-range coordinates
// return Empty.
func (b Board) Get(row, col int) Piece {
	if !WithinBounds(row, col) {
		return Empty
	}

	mask := uint64(1) << (row*BoardSize + col)
	switch {
	case b.black&mask != 0:
		return Black
	case b.white&mask != 0:
		return White
	default:
		return Empty
	}
}

// Discs returns the bitboard of squares holding p. For Empty it returns the
// mask of unoccupied squares.
func (b Board) Discs(p Piece) uint64 {
	switch p {
	case Black:
		return b.black
	case White:
		return b.white
	default:
		return ^(b.black | b.white)
	}
}

// Counts returns the number of empty, black and white squares.
func (b Board) Counts() Counts {
	black := bits.OnesCount64(b.black)
	white := bits.OnesCount64(b.white)
	return Counts{
		Empty: cellCount - black - white,
		Black: black,
		White: white,
	}
}

// sides splits the board into the mover's discs and the opponent's discs.
func (b Board) sides(p Piece) (own, opp uint64) {
	if p == Black {
		return b.black, b.white
	}
	return b.white, b.black
}

// IsLegalMove checks if placing p at (row, col) captures at least one
// opponent disc in some direction.
func (b Board) IsLegalMove(row, col int, p Piece) bool {
	if !p.IsPlayer() || !WithinBounds(row, col) {
		return false
	}

	own, opp := b.sides(p)
	return flipped(row*BoardSize+col, own, opp) != 0
}

// ApplyMove places p at (row, col) and flips every captured run. If the move
// is illegal, the board is returned unchanged.
func (b Board) ApplyMove(row, col int, p Piece) Board {
	if !p.IsPlayer() || !WithinBounds(row, col) {
		return b
	}

	index := row*BoardSize + col
	own, opp := b.sides(p)

	flips := flipped(index, own, opp)
	if flips == 0 {
		return b
	}

	own |= flips | uint64(1)<<index
	opp &^= flips

	if p == Black {
		return Board{black: own, white: opp}
	}
	return Board{black: opp, white: own}
}

// LegalMoves returns every legal move for p in raster order: row by row from
// the top, left to right, which is ascending square-index order.
func (b Board) LegalMoves(p Piece) []Move {
	if !p.IsPlayer() {
		return nil
	}

	own, opp := b.sides(p)
	mask := moveMask(own, opp)

	moves := make([]Move, 0, bits.OnesCount64(mask))
	for mask != 0 {
		index := bits.TrailingZeros64(mask)
		moves = append(moves, MoveFromIndex(index))
		mask &= mask - 1
	}
	return moves
}

// HasAnyLegalMove checks if p has at least one legal move.
func (b Board) HasAnyLegalMove(p Piece) bool {
	return b.LegalMoveCount(p) != 0
}

// LegalMoveCount returns the number of legal moves for p.
func (b Board) LegalMoveCount(p Piece) int {
	if !p.IsPlayer() {
		return 0
	}

	own, opp := b.sides(p)
	return bits.OnesCount64(moveMask(own, opp))
}

// moveMask returns a bitset of all legal moves for the side owning `own`.
// This code was adapted from Edax.
func moveMask(own, opp uint64) uint64 {
	mask := opp & 0x7E7E7E7E7E7E7E7E

	flipL := mask & (own << 1)
	flipL |= mask & (flipL << 1)
	maskL := mask & (mask << 1)
	flipL |= maskL & (flipL << (2 * 1))
	flipL |= maskL & (flipL << (2 * 1))
	flipR := mask & (own >> 1)
	flipR |= mask & (flipR >> 1)
	maskR := mask & (mask >> 1)
	flipR |= maskR & (flipR >> (2 * 1))
	flipR |= maskR & (flipR >> (2 * 1))
	movesSet := (flipL << 1) | (flipR >> 1)

	flipL = mask & (own << 7)
	flipL |= mask & (flipL << 7)
	maskL = mask & (mask << 7)
	flipL |= maskL & (flipL << (2 * 7))
	flipL |= maskL & (flipL << (2 * 7))
	flipR = mask & (own >> 7)
	flipR |= mask & (flipR >> 7)
	maskR = mask & (mask >> 7)
	flipR |= maskR & (flipR >> (2 * 7))
	flipR |= maskR & (flipR >> (2 * 7))
	movesSet |= (flipL << 7) | (flipR >> 7)

	flipL = mask & (own << 9)
	flipL |= mask & (flipL << 9)
	maskL = mask & (mask << 9)
	flipL |= maskL & (flipL << (2 * 9))
	flipL |= maskL & (flipL << (2 * 9))
	flipR = mask & (own >> 9)
	flipR |= mask & (flipR >> 9)
	maskR = mask & (mask >> 9)
	flipR |= maskR & (flipR >> (2 * 9))
	flipR |= maskR & (flipR >> (2 * 9))
	movesSet |= (flipL << 9) | (flipR >> 9)

	flipL = opp & (own << 8)
	flipL |= opp & (flipL << 8)
	maskL = opp & (opp << 8)
	flipL |= maskL & (flipL << (2 * 8))
	flipL |= maskL & (flipL << (2 * 8))
	flipR = opp & (own >> 8)
	flipR |= opp & (flipR >> 8)
	maskR = opp & (opp >> 8)
	flipR |= maskR & (flipR >> (2 * 8))
	flipR |= maskR & (flipR >> (2 * 8))
	movesSet |= (flipL << 8) | (flipR >> 8)

	movesSet &^= own | opp
	return movesSet
}

// flipped returns a bitset of all opponent discs captured by placing on
// `index`. It returns 0 when the square is occupied or when no direction
// captures, which makes it double as the legality test.
func flipped(index int, own, opp uint64) uint64 {
	moveBit := uint64(1) << index

	if (own|opp)&moveBit != 0 {
		return 0
	}

	flips := uint64(0)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}

			s := 1
			for {
				curx := (index % BoardSize) + (dx * s)
				cury := (index / BoardSize) + (dy * s)
				if curx < 0 || curx >= BoardSize || cury < 0 || cury >= BoardSize {
					break
				}

				cur := BoardSize*cury + curx
				curBit := uint64(1) << cur

				if opp&curBit != 0 {
					s++
					continue
				}

				if own&curBit != 0 && s >= 2 {
					for p := 1; p < s; p++ {
						f := index + p*(BoardSize*dy+dx)
						flips |= uint64(1) << f
					}
				}
				break
			}
		}
	}

	return flips
}

// ASCIIArtLines returns the ascii art lines for the board, marking the
// legal moves of `mover` with dots.
func (b Board) ASCIIArtLines(mover Piece) []string {
	var moves uint64
	if mover.IsPlayer() {
		own, opp := b.sides(mover)
		moves = moveMask(own, opp)
	}

	lines := make([]string, BoardSize+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range BoardSize {
		line := fmt.Sprintf("%d ", row+1)

		for col := range BoardSize {
			mask := uint64(1) << (row*BoardSize + col)

			switch {
			case b.white&mask != 0:
				line += "○ "
			case b.black&mask != 0:
				line += "● "
			case moves&mask != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[BoardSize+1] = "+-----------------+"

	return lines
}
