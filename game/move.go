package game

import (
	"iter"
	"math/bits"
)

// Move is a placement together with the opponent discs it captures.
type Move struct {
	Pos     Position
	Flipped uint64
}

// IsValid reports whether the move captures at least one disc.
func (m Move) IsValid() bool {
	return m.Flipped != 0
}

// FlipCount returns the number of discs the move captures.
func (m Move) FlipCount() int {
	return bits.OnesCount64(m.Flipped)
}

// MoveList is a fixed-capacity list of moves in generation order. Pushing past
// MaxMoves is silently ignored.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

// Push appends m if there is room.
func (l *MoveList) Push(m Move) {
	if l.n < MaxMoves {
		l.moves[l.n] = m
		l.n++
	}
}

// Len returns the number of moves.
func (l *MoveList) Len() int {
	return l.n
}

// IsEmpty reports whether there are no moves.
func (l *MoveList) IsEmpty() bool {
	return l.n == 0
}

// At returns the i-th move.
func (l *MoveList) At(i int) (Move, bool) {
	if i < 0 || i >= l.n {
		return Move{}, false
	}
	return l.moves[i], true
}

// Slice returns the moves as a slice backed by the list.
func (l *MoveList) Slice() []Move {
	return l.moves[:l.n]
}

// All yields the moves in generation order.
func (l *MoveList) All() iter.Seq2[int, Move] {
	return func(yield func(int, Move) bool) {
		for i := 0; i < l.n; i++ {
			if !yield(i, l.moves[i]) {
				return
			}
		}
	}
}

// Bitboard returns the destination squares of all moves as a mask.
func (l *MoveList) Bitboard() uint64 {
	var mask uint64
	for _, m := range l.Slice() {
		mask |= m.Pos.Mask()
	}
	return mask
}
