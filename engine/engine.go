package engine

import (
	"context"
	"errors"
	"othello/experiments/metrics"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameOver     = errors.New("game is over")
	ErrAwaitingMove = errors.New("waiting for a human move")
)

type Engine interface {
	// Run plays until the game is over or ctx is cancelled
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
