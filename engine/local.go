package engine

import (
	"context"
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(l *Local)

// WithState continues an existing game instead of starting a new one.
func WithState(state *game.GameState) Option {
	return func(l *Local) {
		if state != nil {
			l.state = state.Clone()
		}
	}
}

// Local drives a game between two seats. A nil agent is a human seat whose
// moves arrive through Play.
type Local struct {
	state       *game.GameState
	agents      [2]agent.Agent
	starting    game.Player
	startTime   time.Time
	moveMetrics []metrics.MoveMetric
}

var _ Engine = (*Local)(nil)

func NewLocal(black, white agent.Agent, options ...Option) *Local {
	l := &Local{
		state:     game.NewGameState(),
		agents:    [2]agent.Agent{game.Black: black, game.White: white},
		startTime: time.Now(),
	}
	for _, option := range options {
		option(l)
	}
	l.starting = l.state.CurrentPlayer()
	return l
}

// State returns a snapshot of the game.
func (l *Local) State() *game.GameState {
	return l.state.Clone()
}

// IsHumanTurn reports whether the game waits on Play.
func (l *Local) IsHumanTurn() bool {
	return !l.state.IsGameOver() && l.state.HasMoves() && l.agents[l.state.CurrentPlayer()] == nil
}

// Step plays one ply for the player to move: a pass when there is no legal
// move, otherwise the move chosen by that player's agent.
func (l *Local) Step() (metrics.MoveMetric, error) {
	if l.state.IsGameOver() {
		return metrics.MoveMetric{}, ErrGameOver
	}
	player := l.state.CurrentPlayer()
	step := l.state.MoveCount() + 1

	if !l.state.HasMoves() {
		l.state.Pass()
		log.Info().Msgf("%s has no legal move and passes", player)
		mm := metrics.MoveMetric{Step: step, Player: player, Position: game.PassPosition}
		l.moveMetrics = append(l.moveMetrics, mm)
		return mm, nil
	}

	a := l.agents[player]
	if a == nil {
		return metrics.MoveMetric{}, ErrAwaitingMove
	}
	pos, searchMetric, ok := a.FindMove(l.state)
	if !ok {
		return metrics.MoveMetric{}, fmt.Errorf("%w: agent for %s found no move", ErrIllegalMove, player)
	}
	if _, ok := l.state.MakeMove(pos); !ok {
		return metrics.MoveMetric{}, fmt.Errorf("%w: agent for %s chose %s", ErrIllegalMove, player, pos)
	}

	mm := metrics.MoveMetric{Step: step, Player: player, Position: pos, SearchMetric: searchMetric}
	l.moveMetrics = append(l.moveMetrics, mm)
	return mm, nil
}

// Play applies a move submitted for the player to move.
func (l *Local) Play(pos game.Position) (game.Move, error) {
	if l.state.IsGameOver() {
		return game.Move{}, ErrGameOver
	}
	player := l.state.CurrentPlayer()
	step := l.state.MoveCount() + 1
	m, ok := l.state.MakeMove(pos)
	if !ok {
		return game.Move{}, fmt.Errorf("%w: %s for %s", ErrIllegalMove, pos, player)
	}
	l.moveMetrics = append(l.moveMetrics, metrics.MoveMetric{Step: step, Player: player, Position: pos})
	return m, nil
}

// Advance steps through agent turns and forced passes until a human seat has
// a move to make or the game is over.
func (l *Local) Advance(ctx context.Context) ([]metrics.MoveMetric, error) {
	var played []metrics.MoveMetric
	for !l.state.IsGameOver() && !l.IsHumanTurn() {
		if err := ctx.Err(); err != nil {
			return played, err
		}
		mm, err := l.Step()
		if err != nil {
			return played, err
		}
		played = append(played, mm)
	}
	return played, nil
}

// Undo takes back plies until the human seat has a move to make again. With
// two humans or two agents it takes back the last placement together with
// any passes played after it.
func (l *Local) Undo() ([]game.HistoryEntry, bool) {
	var undone []game.HistoryEntry
	for {
		e, ok := l.state.Undo()
		if !ok {
			break
		}
		undone = append(undone, e)
		if len(l.moveMetrics) > 0 {
			l.moveMetrics = l.moveMetrics[:len(l.moveMetrics)-1]
		}
		if !e.IsPass() && (!l.mixedSeats() || l.agents[e.Player] == nil) {
			break
		}
	}
	return undone, len(undone) > 0
}

func (l *Local) mixedSeats() bool {
	return (l.agents[game.Black] == nil) != (l.agents[game.White] == nil)
}

// Run plays the game to the end. Every seat must have an agent.
func (l *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	log.Info().Msgf("%s is starting", l.state.CurrentPlayer())

	for !l.state.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return metrics.GameMetric{}, l.moveMetrics, err
		}
		if _, err := l.Step(); err != nil {
			return metrics.GameMetric{}, l.moveMetrics, err
		}
	}

	gm := l.GameMetric()
	log.Info().Msgf("game over after %d plies, winner: %s (%d-%d)", gm.Plies, gm.Winner, gm.Black, gm.White)
	return gm, l.moveMetrics, nil
}

// GameMetric summarizes the game so far.
func (l *Local) GameMetric() metrics.GameMetric {
	end := time.Now()
	black, white := l.state.Counts()
	gm := metrics.GameMetric{
		StartingPlayer: l.starting,
		Black:          black,
		White:          white,
		Plies:          l.state.MoveCount(),
		StartTime:      l.startTime,
		EndTime:        end,
		Duration:       end.Sub(l.startTime),
	}
	for _, e := range l.state.History() {
		if e.IsPass() {
			gm.Passes++
		}
	}
	if result, ok := l.state.Result(); ok {
		gm.Winner = result.WinnerName()
	}
	return gm
}
