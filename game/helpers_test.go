package game

import (
	"math/rand"
)

// playRandom advances gs by up to plies random legal plies, passing when
// forced, and stops early at game over.
func playRandom(rng *rand.Rand, gs *GameState, plies int) {
	for i := 0; i < plies && !gs.IsGameOver(); i++ {
		moves := gs.LegalMoves()
		if moves.IsEmpty() {
			gs.Pass()
			continue
		}
		m, _ := moves.At(rng.Intn(moves.Len()))
		gs.MakeMove(m.Pos)
	}
}

func mustParse(name string) Position {
	pos, ok := ParsePosition(name)
	if !ok {
		panic("bad square " + name)
	}
	return pos
}
