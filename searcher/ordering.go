package searcher

import (
	"cmp"
	"othello/game"
	"slices"
)

var (
	cornerSquares = game.Pos(0, 0).Mask() | game.Pos(0, 7).Mask() | game.Pos(7, 0).Mask() | game.Pos(7, 7).Mask()
	xSquares      = game.Pos(1, 1).Mask() | game.Pos(1, 6).Mask() | game.Pos(6, 1).Mask() | game.Pos(6, 6).Mask()
	cSquares      = game.Pos(0, 1).Mask() | game.Pos(1, 0).Mask() | game.Pos(0, 6).Mask() | game.Pos(1, 7).Mask() |
		game.Pos(6, 0).Mask() | game.Pos(7, 1).Mask() | game.Pos(6, 7).Mask() | game.Pos(7, 6).Mask()
	edgeSquares uint64 = 0xff818181818181ff
)

// orderScore is a static guess at how good a move is. It only affects the
// order moves are searched in.
func orderScore(board game.Board, player game.Player, m game.Move) int {
	mask := m.Pos.Mask()
	score := 0
	switch {
	case mask&cornerSquares != 0:
		score += 1000
	case mask&xSquares != 0:
		score -= 500
	case mask&cSquares != 0:
		score -= 200
	case mask&edgeSquares != 0:
		score += 100
	}
	score += m.FlipCount() * 5

	next := game.Apply(board, player, m)
	score -= game.CountMoves(next, player.Opponent()) * 3
	return score
}

// OrderMoves returns the moves best-first. Equal scores keep generation order.
func OrderMoves(board game.Board, player game.Player, moves *game.MoveList) []game.Move {
	type scored struct {
		move  game.Move
		score int
	}
	ranked := make([]scored, 0, moves.Len())
	for _, m := range moves.All() {
		ranked = append(ranked, scored{move: m, score: orderScore(board, player, m)})
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	ordered := make([]game.Move, len(ranked))
	for i, r := range ranked {
		ordered[i] = r.move
	}
	return ordered
}
