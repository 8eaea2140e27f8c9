package agent

import (
	"othello/experiments/metrics"
	"othello/game"
)

type Agent interface {
	// FindMove returns the square to play and performance metrics (if collected)
	// from the search. It reports false when the player to move has no legal move.
	FindMove(state *game.GameState) (game.Position, metrics.SearchMetric, bool)
}
