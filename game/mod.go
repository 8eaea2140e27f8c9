package game

// Position addresses a square: row*8 + col, row 0 = rank 1, col 0 = file A.
type Position uint8

// PassPosition is the history sentinel recorded for a pass.
const PassPosition Position = 255

const (
	BoardSize = 8
	Squares   = BoardSize * BoardSize

	// MaxHistory bounds the plies a single game can record.
	MaxHistory = 64
	// MaxMoves bounds the number of simultaneously legal moves.
	MaxMoves = 32
)

// Score is a position evaluation from one player's perspective.
type Score int32

const (
	// ScoreWin and ScoreLoss are reserved for decided positions. Heuristic
	// scores always stay strictly between them.
	ScoreWin  Score = 100_000
	ScoreLoss Score = -100_000
)

// EvaluationFn scores a board from the given player's perspective, positive
// being favorable to that player.
type EvaluationFn func(board Board, player Player) Score

// Pos converts a (row, col) pair to a Position.
func Pos(row, col int) Position {
	return Position(row*BoardSize + col)
}

// Row returns the 0-based row (rank - 1) of the position.
func (p Position) Row() int {
	return int(p) / BoardSize
}

// Col returns the 0-based column (file) of the position.
func (p Position) Col() int {
	return int(p) % BoardSize
}

// Mask returns the single-bit bitboard for the position.
func (p Position) Mask() uint64 {
	return 1 << p
}

// IsPass reports whether p is the pass sentinel.
func (p Position) IsPass() bool {
	return p == PassPosition
}
