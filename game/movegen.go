package game

const (
	notFileA uint64 = 0xfefefefefefefefe
	notFileH uint64 = 0x7f7f7f7f7f7f7f7f
)

// direction is a bit shift plus the mask of squares that may be shifted
// without wrapping onto the opposite edge.
type direction struct {
	shift int
	mask  uint64
}

var directions = [8]direction{
	{1, notFileH},    // east
	{-1, notFileA},   // west
	{8, ^uint64(0)},  // north (towards rank 8)
	{-8, ^uint64(0)}, // south
	{9, notFileH},    // north-east
	{7, notFileA},    // north-west
	{-7, notFileH},   // south-east
	{-9, notFileA},   // south-west
}

func (d direction) step(mask uint64) uint64 {
	mask &= d.mask
	if d.shift > 0 {
		return mask << d.shift
	}
	return mask >> -d.shift
}

// CalculateFlips returns the discs captured by player placing at pos, or 0 if
// pos is occupied or nothing would be captured.
func CalculateFlips(board Board, player Player, pos Position) uint64 {
	if pos >= Squares || board.IsOccupied(pos) {
		return 0
	}
	own := board.Discs(player)
	opp := board.Discs(player.Opponent())

	var flipped uint64
	for _, d := range directions {
		var line uint64
		cur := d.step(pos.Mask())
		for cur&opp != 0 {
			line |= cur
			cur = d.step(cur)
		}
		if cur&own != 0 {
			flipped |= line
		}
	}
	return flipped
}

// GenerateMoves returns every legal move for player in ascending square order.
func GenerateMoves(board Board, player Player) MoveList {
	var moves MoveList
	for pos := range Bits(board.EmptySquares()) {
		if flipped := CalculateFlips(board, player, pos); flipped != 0 {
			moves.Push(Move{Pos: pos, Flipped: flipped})
		}
	}
	return moves
}

// CountMoves counts legal moves for player without building a list.
func CountMoves(board Board, player Player) int {
	n := 0
	for pos := range Bits(board.EmptySquares()) {
		if CalculateFlips(board, player, pos) != 0 {
			n++
		}
	}
	return n
}

// HasMoves reports whether player has at least one legal move.
func HasMoves(board Board, player Player) bool {
	for pos := range Bits(board.EmptySquares()) {
		if CalculateFlips(board, player, pos) != 0 {
			return true
		}
	}
	return false
}

// IsLegalMove reports whether player may place at pos.
func IsLegalMove(board Board, player Player, pos Position) bool {
	return CalculateFlips(board, player, pos) != 0
}

// LegalMovesBitboard returns the legal destination squares for player.
func LegalMovesBitboard(board Board, player Player) uint64 {
	var legal uint64
	for pos := range Bits(board.EmptySquares()) {
		if CalculateFlips(board, player, pos) != 0 {
			legal |= pos.Mask()
		}
	}
	return legal
}

// GameHasMoves reports whether either player can move.
func GameHasMoves(board Board) bool {
	return HasMoves(board, Black) || HasMoves(board, White)
}

// Apply returns a copy of board with m played by player.
func Apply(board Board, player Player, m Move) Board {
	board.Place(player, m.Pos)
	board.Flip(player.Opponent(), m.Flipped)
	return board
}
