package game

import (
	"iter"
	"math/bits"
	"strings"
)

// Player is one of the two sides. Black always moves first.
type Player uint8

const (
	Black Player = iota
	White
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return p ^ 1
}

func (p Player) String() string {
	if p == Black {
		return "Black"
	}
	return "White"
}

const (
	// Starting discs: D4 and E5 white, E4 and D5 black.
	startBlack uint64 = 1<<28 | 1<<35
	startWhite uint64 = 1<<27 | 1<<36

	hashMultiplier uint64 = 0x9e3779b97f4a7c15
)

// Board holds one bitboard per player. Bit i set means square i is occupied by
// that player; the two sets never intersect.
type Board struct {
	Black uint64
	White uint64
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	return Board{Black: startBlack, White: startWhite}
}

// EmptyBoard returns a board with no discs.
func EmptyBoard() Board {
	return Board{}
}

// Discs returns the bitboard of the given player.
func (b Board) Discs(p Player) uint64 {
	if p == Black {
		return b.Black
	}
	return b.White
}

func (b *Board) discs(p Player) *uint64 {
	if p == Black {
		return &b.Black
	}
	return &b.White
}

// HasDisc reports whether player p occupies pos.
func (b Board) HasDisc(p Player, pos Position) bool {
	return b.Discs(p)&pos.Mask() != 0
}

// IsEmpty reports whether pos is unoccupied.
func (b Board) IsEmpty(pos Position) bool {
	return b.Occupied()&pos.Mask() == 0
}

// IsOccupied reports whether either player occupies pos.
func (b Board) IsOccupied(pos Position) bool {
	return !b.IsEmpty(pos)
}

// DiscAt returns the owner of pos, if any.
func (b Board) DiscAt(pos Position) (Player, bool) {
	mask := pos.Mask()
	switch {
	case b.Black&mask != 0:
		return Black, true
	case b.White&mask != 0:
		return White, true
	default:
		return Black, false
	}
}

// Place puts a disc of player p on pos.
func (b *Board) Place(p Player, pos Position) {
	*b.discs(p) |= pos.Mask()
}

// Remove clears player p's disc from pos.
func (b *Board) Remove(p Player, pos Position) {
	*b.discs(p) &^= pos.Mask()
}

// Flip hands every square in mask from player `from` to its opponent in a
// single update of both sets.
func (b *Board) Flip(from Player, mask uint64) {
	src, dst := b.discs(from), b.discs(from.Opponent())
	*src &^= mask
	*dst |= mask
}

// Count returns the number of discs owned by p.
func (b Board) Count(p Player) int {
	return bits.OnesCount64(b.Discs(p))
}

// Occupied returns the bitboard of all discs.
func (b Board) Occupied() uint64 {
	return b.Black | b.White
}

// EmptySquares returns the bitboard of unoccupied squares.
func (b Board) EmptySquares() uint64 {
	return ^b.Occupied()
}

// EmptyCount returns the number of unoccupied squares.
func (b Board) EmptyCount() int {
	return bits.OnesCount64(b.EmptySquares())
}

// IsFull reports whether every square is occupied.
func (b Board) IsFull() bool {
	return b.Occupied() == ^uint64(0)
}

// Hash combines both bitboards into a deterministic 64-bit key.
func (b Board) Hash() uint64 {
	return b.Black*hashMultiplier ^ b.White
}

// Bits yields the position of every set bit in mask, lowest first. The
// sequence can be ranged over any number of times.
func Bits(mask uint64) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for m := mask; m != 0; m &= m - 1 {
			if !yield(Position(bits.TrailingZeros64(m))) {
				return
			}
		}
	}
}

// String renders the board with rank 1 on top: X for black, O for white.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  A B C D E F G H\n")
	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(byte('1' + row))
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(' ')
			switch owner, ok := b.DiscAt(Pos(row, col)); {
			case !ok:
				sb.WriteByte('.')
			case owner == Black:
				sb.WriteByte('X')
			default:
				sb.WriteByte('O')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
