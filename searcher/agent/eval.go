package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent that plays the searcher's best move.
func NewSearchAgent(s *searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindMove(state *game.GameState) (game.Position, metrics.SearchMetric, bool) {
	return a.searcher.Search(state.Board(), state.CurrentPlayer())
}
