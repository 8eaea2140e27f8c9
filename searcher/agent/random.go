package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal moves,
// reproducibly for a given seed.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.GameState) (game.Position, metrics.SearchMetric, bool) {
	start := time.Now()
	pos, ok := searcher.RandomMove(state.Board(), state.CurrentPlayer(), a.rng)
	if !ok {
		return 0, metrics.SearchMetric{}, false
	}
	return pos, metrics.SearchMetric{Difficulty: "random", Mode: metrics.ModeRandom, Duration: time.Since(start)}, true
}
