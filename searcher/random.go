package searcher

import (
	"othello/game"

	"golang.org/x/exp/rand"
)

// RandomMove picks a legal move uniformly at random.
func RandomMove(board game.Board, player game.Player, rng *rand.Rand) (game.Position, bool) {
	moves := game.GenerateMoves(board, player)
	if moves.IsEmpty() {
		return 0, false
	}
	m, _ := moves.At(rng.Intn(moves.Len()))
	return m.Pos, true
}
