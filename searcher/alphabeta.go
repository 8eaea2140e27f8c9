package searcher

import (
	"othello/experiments/metrics"
	"othello/game"
)

// search holds what stays fixed for the duration of one root decision.
// Scores are always from root's perspective; maximizing nodes have root to
// move.
type search struct {
	root     game.Player
	evaluate game.EvaluationFn
	metrics  metrics.Collector
}

func (s *search) mover(maximizing bool) game.Player {
	if maximizing {
		return s.root
	}
	return s.root.Opponent()
}

// alphabeta is depth-limited minimax with alpha-beta pruning. A pass flips
// the side to move without consuming depth.
func (s *search) alphabeta(board game.Board, depth int, alpha, beta game.Score, maximizing bool) game.Score {
	s.metrics.AddNode()

	if depth <= 0 {
		return s.evaluate(board, s.root)
	}

	current := s.mover(maximizing)
	moves := game.GenerateMoves(board, current)
	if moves.IsEmpty() {
		if !game.HasMoves(board, current.Opponent()) {
			return s.evaluate(board, s.root)
		}
		return s.alphabeta(board, depth, alpha, beta, !maximizing)
	}

	ordered := OrderMoves(board, current, &moves)
	if maximizing {
		best := negInfinity
		for _, m := range ordered {
			score := s.alphabeta(game.Apply(board, current, m), depth-1, alpha, beta, false)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := infinity
	for _, m := range ordered {
		score := s.alphabeta(game.Apply(board, current, m), depth-1, alpha, beta, true)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// exactScore scores a finished game: winning by more and losing by less both
// score higher.
func exactScore(board game.Board, player game.Player) game.Score {
	own := game.Score(board.Count(player))
	opp := game.Score(board.Count(player.Opponent()))
	switch {
	case own > opp:
		return game.ScoreWin - opp
	case opp > own:
		return game.ScoreLoss + own
	default:
		return 0
	}
}

// solveEndgame searches to the end of the game and returns the exact
// outcome under perfect play.
func (s *search) solveEndgame(board game.Board, alpha, beta game.Score, maximizing bool) game.Score {
	s.metrics.AddNode()

	current := s.mover(maximizing)
	moves := game.GenerateMoves(board, current)
	if moves.IsEmpty() {
		if !game.HasMoves(board, current.Opponent()) {
			return exactScore(board, s.root)
		}
		return s.solveEndgame(board, alpha, beta, !maximizing)
	}

	ordered := OrderMoves(board, current, &moves)
	if maximizing {
		best := negInfinity
		for _, m := range ordered {
			score := s.solveEndgame(game.Apply(board, current, m), alpha, beta, false)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := infinity
	for _, m := range ordered {
		score := s.solveEndgame(game.Apply(board, current, m), alpha, beta, true)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// bestRoot scores every root move with score and keeps the strictly highest,
// the earliest in move order winning ties.
func (s *search) bestRoot(board game.Board, moves *game.MoveList, score func(game.Board) game.Score) (game.Position, game.Score) {
	var (
		bestPos   game.Position
		bestScore game.Score
		found     bool
	)
	for _, m := range OrderMoves(board, s.root, moves) {
		v := score(game.Apply(board, s.root, m))
		if !found || v > bestScore {
			bestPos, bestScore, found = m.Pos, v, true
		}
	}
	return bestPos, bestScore
}
