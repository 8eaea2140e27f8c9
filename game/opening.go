package game

import "strings"

// symmetries[t][p] is the image of square p under the t-th board symmetry:
// t/2 quarter turns clockwise, followed by a horizontal mirror when t is odd.
var symmetries = func() [8][Squares]Position {
	var table [8][Squares]Position
	for t := range table {
		for pos := 0; pos < Squares; pos++ {
			row, col := pos/BoardSize, pos%BoardSize
			for k := 0; k < t/2; k++ {
				row, col = col, BoardSize-1-row
			}
			if t%2 == 1 {
				col = BoardSize - 1 - col
			}
			table[t][pos] = Pos(row, col)
		}
	}
	return table
}()

func transformBoard(t int, b Board) Board {
	var out Board
	for pos := range Bits(b.Black) {
		out.Black |= symmetries[t][pos].Mask()
	}
	for pos := range Bits(b.White) {
		out.White |= symmetries[t][pos].Mask()
	}
	return out
}

func inverseTransform(t int, image Position) Position {
	for pos, p := range symmetries[t] {
		if p == image {
			return Position(pos)
		}
	}
	return image
}

// canonicalize returns the smallest hash among the 8 symmetric images of b
// and the symmetry producing it.
func canonicalize(b Board) (uint64, int) {
	best, bestT := b.Hash(), 0
	for t := 1; t < len(symmetries); t++ {
		if h := transformBoard(t, b).Hash(); h < best {
			best, bestT = h, t
		}
	}
	return best, bestT
}

// CanonicalHash is identical for any two boards related by a rotation or
// reflection.
func CanonicalHash(b Board) uint64 {
	h, _ := canonicalize(b)
	return h
}

// BookLine is an opening sequence from the starting position and the reply
// recommended after it, in algebraic notation.
type BookLine struct {
	Moves string
	Reply string
}

// OpeningBook maps canonical positions to a recommended reply. It is
// immutable once built.
type OpeningBook struct {
	entries map[uint64]Position
}

// NewOpeningBook replays each line from the standard opening. Lines that do
// not parse, contain an illegal move, or recommend an illegal reply are
// skipped.
func NewOpeningBook(lines []BookLine) *OpeningBook {
	book := &OpeningBook{entries: make(map[uint64]Position, len(lines))}
	for _, line := range lines {
		board, player, ok := replayLine(line.Moves)
		if !ok {
			continue
		}
		reply, ok := ParsePosition(line.Reply)
		if !ok || !IsLegalMove(board, player, reply) {
			continue
		}
		h, t := canonicalize(board)
		book.entries[h] = symmetries[t][reply]
	}
	return book
}

func replayLine(moves string) (Board, Player, bool) {
	gs := NewGameState()
	for _, name := range strings.Fields(moves) {
		pos, ok := ParsePosition(name)
		if !ok {
			return Board{}, Black, false
		}
		if _, ok := gs.MakeMove(pos); !ok {
			return Board{}, Black, false
		}
	}
	return gs.Board(), gs.CurrentPlayer(), true
}

// Len returns the number of positions in the book.
func (ob *OpeningBook) Len() int {
	return len(ob.entries)
}

// Lookup returns the book reply for board, oriented to the board as given.
// Most positions are not in the book.
func (ob *OpeningBook) Lookup(board Board) (Position, bool) {
	h, t := canonicalize(board)
	reply, ok := ob.entries[h]
	if !ok {
		return 0, false
	}
	return inverseTransform(t, reply), true
}

// StandardOpenings are the built-in book lines.
var StandardOpenings = []BookLine{
	{Moves: "", Reply: "F5"},
	{Moves: "F5", Reply: "D6"},
	{Moves: "F5 D6", Reply: "C3"},
	{Moves: "F5 D6 C3", Reply: "D3"},
	{Moves: "F5 D6 C3 D3", Reply: "C4"},
	{Moves: "F5 F6", Reply: "E6"},
	{Moves: "F5 F6 E6", Reply: "F4"},
	{Moves: "F5 F6 E6 F4", Reply: "C3"},
	{Moves: "F5 F4", Reply: "E3"},
	{Moves: "F5 F4 E3", Reply: "F6"},
}

var defaultBook = NewOpeningBook(StandardOpenings)

// DefaultOpeningBook returns the book built from StandardOpenings.
func DefaultOpeningBook() *OpeningBook {
	return defaultBook
}
