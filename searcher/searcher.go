package searcher

import (
	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// Searcher picks moves at a fixed difficulty. It keeps per-search metrics
// and is not safe for concurrent use.
type Searcher struct {
	difficulty Difficulty
	evaluate   game.EvaluationFn
	book       *game.OpeningBook
	metrics    metrics.Collector
}

func WithEvaluationFn(evaluate game.EvaluationFn) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

// WithOpeningBook replaces the built-in book. Only difficulties that consult a
// book use it.
func WithOpeningBook(book *game.OpeningBook) Option {
	return func(s *Searcher) {
		if book != nil {
			s.book = book
		}
	}
}

func WithoutOpeningBook() Option {
	return func(s *Searcher) {
		s.book = nil
	}
}

func New(difficulty Difficulty, options ...Option) *Searcher {
	s := &Searcher{ // Default values
		difficulty: difficulty,
		evaluate:   game.Evaluate,
		book:       game.DefaultOpeningBook(),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Difficulty() Difficulty {
	return s.difficulty
}

// FindBestMove returns the move to play, or false if player has no legal
// move.
func (s *Searcher) FindBestMove(board game.Board, player game.Player) (game.Position, bool) {
	pos, _, ok := s.Search(board, player)
	return pos, ok
}

// Search is FindBestMove plus the metrics of the decision. Metrics are zero
// unless the searcher was built WithMetrics.
func (s *Searcher) Search(board game.Board, player game.Player) (game.Position, metrics.SearchMetric, bool) {
	moves := game.GenerateMoves(board, player)
	if moves.IsEmpty() {
		return 0, metrics.SearchMetric{}, false
	}

	s.metrics.Start(s.difficulty.String(), s.difficulty.Depth())
	pos, score, mode := s.decide(board, player, &moves)
	s.metrics.SetMode(mode)
	metric := s.metrics.Complete(score)

	log.Debug().Msgf("%s search for %s chose %s by %s", s.difficulty, player, pos, mode)
	return pos, metric, true
}

func (s *Searcher) decide(board game.Board, player game.Player, moves *game.MoveList) (game.Position, game.Score, metrics.Mode) {
	if moves.Len() == 1 {
		m, _ := moves.At(0)
		return m.Pos, 0, metrics.ModeForced
	}

	if s.difficulty.UseOpeningBook() && s.book != nil {
		if pos, ok := s.book.Lookup(board); ok && game.IsLegalMove(board, player, pos) {
			return pos, 0, metrics.ModeBook
		}
	}

	sr := &search{root: player, evaluate: s.evaluate, metrics: s.metrics}

	if s.difficulty.UseEndgameSolver() && board.EmptyCount() <= s.difficulty.EndgameThreshold() {
		pos, score := sr.bestRoot(board, moves, func(child game.Board) game.Score {
			return sr.solveEndgame(child, negInfinity, infinity, false)
		})
		return pos, score, metrics.ModeEndgame
	}

	depth := s.difficulty.Depth()
	pos, score := sr.bestRoot(board, moves, func(child game.Board) game.Score {
		return sr.alphabeta(child, depth-1, negInfinity, infinity, false)
	})
	return pos, score, metrics.ModeAlphaBeta
}

// FindBestMove searches with the default configuration for difficulty.
func FindBestMove(board game.Board, player game.Player, difficulty Difficulty) (game.Position, bool) {
	return New(difficulty).FindBestMove(board, player)
}

// Hint suggests a move for a human player at Hard strength.
func Hint(board game.Board, player game.Player) (game.Position, bool) {
	return FindBestMove(board, player, Hard)
}
