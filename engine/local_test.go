package engine

import (
	"context"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	pos game.Position
}

func (a fixedAgent) FindMove(state *game.GameState) (game.Position, metrics.SearchMetric, bool) {
	return a.pos, metrics.SearchMetric{}, true
}

func square(name string) game.Position {
	pos, ok := game.ParsePosition(name)
	if !ok {
		panic("bad square " + name)
	}
	return pos
}

func TestRun(t *testing.T) {
	t.Run("random agents finish the game", func(t *testing.T) {
		e := NewLocal(agent.NewRandomAgent(1), agent.NewRandomAgent(2))

		gm, moves, err := e.Run(context.Background())

		require.NoError(t, err)
		require.True(t, e.State().IsGameOver(), "Run should only return at game over")
		require.Contains(t, []string{"black", "white", "draw"}, gm.Winner)
		require.Equal(t, 64-e.State().EmptyCount(), gm.Black+gm.White, "Counts should cover every disc")
		require.NotEmpty(t, moves)
		require.Equal(t, game.Black, gm.StartingPlayer)
		require.Equal(t, game.Black, moves[0].Player, "Black moves first")
	})

	t.Run("search agents", func(t *testing.T) {
		e := NewLocal(
			agent.NewSearchAgent(searcher.New(searcher.Easy, searcher.WithMetrics())),
			agent.NewSearchAgent(searcher.New(searcher.Medium, searcher.WithMetrics())),
		)

		gm, moves, err := e.Run(context.Background())

		require.NoError(t, err)
		require.NotEmpty(t, gm.Winner)
		for _, mm := range moves {
			if mm.Position.IsPass() {
				continue
			}
			require.NotEmpty(t, mm.Mode, "Searched moves should carry their mode")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := NewLocal(agent.NewRandomAgent(1), agent.NewRandomAgent(2)).Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("illegal agent move", func(t *testing.T) {
		e := NewLocal(fixedAgent{pos: square("A1")}, agent.NewRandomAgent(2))

		_, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Zero(t, e.State().MoveCount(), "The illegal move must not be applied")
	})
}

func TestStep(t *testing.T) {
	t.Run("forced pass", func(t *testing.T) {
		b := game.EmptyBoard()
		b.Place(game.Black, square("A1"))
		b.Place(game.White, square("B1"))
		e := NewLocal(nil, nil, WithState(game.FromBoard(b, game.White)))

		mm, err := e.Step()

		require.NoError(t, err)
		require.True(t, mm.Position.IsPass(), "White has no move and must pass")
		require.Equal(t, game.White, mm.Player)
		require.Equal(t, game.Black, e.State().CurrentPlayer())
	})

	t.Run("human seat", func(t *testing.T) {
		e := NewLocal(nil, agent.NewRandomAgent(4))
		require.True(t, e.IsHumanTurn())

		_, err := e.Step()
		require.ErrorIs(t, err, ErrAwaitingMove)
	})

	t.Run("game over", func(t *testing.T) {
		full := game.Board{Black: 0xFFFFFFFF00000000, White: 0x00000000FFFFFFFF}
		e := NewLocal(nil, nil, WithState(game.FromBoard(full, game.Black)))

		_, err := e.Step()
		require.ErrorIs(t, err, ErrGameOver)
		_, err = e.Play(square("D3"))
		require.ErrorIs(t, err, ErrGameOver)
		require.Equal(t, "draw", e.GameMetric().Winner)
	})
}

func TestHumanPlay(t *testing.T) {
	e := NewLocal(nil, agent.NewRandomAgent(4))

	_, err := e.Play(square("A1"))
	require.ErrorIs(t, err, ErrIllegalMove)

	m, err := e.Play(square("D3"))
	require.NoError(t, err)
	require.Equal(t, 1, m.FlipCount())
	require.False(t, e.IsHumanTurn(), "White's agent is to move")

	played, err := e.Advance(context.Background())
	require.NoError(t, err)
	require.Len(t, played, 1, "The agent should answer once")
	require.Equal(t, game.White, played[0].Player)
	require.True(t, e.IsHumanTurn())

	undone, ok := e.Undo()
	require.True(t, ok)
	require.Len(t, undone, 2, "Undo should take back the agent reply and the human move")
	require.Equal(t, game.NewBoard(), e.State().Board())
	require.Equal(t, game.Black, e.State().CurrentPlayer())
}

func TestUndoTwoHumans(t *testing.T) {
	e := NewLocal(nil, nil)
	_, err := e.Play(square("D3"))
	require.NoError(t, err)
	_, err = e.Play(square("C3"))
	require.NoError(t, err)

	undone, ok := e.Undo()
	require.True(t, ok)
	require.Len(t, undone, 1, "Without an agent undo takes back one ply")
	require.Equal(t, game.White, e.State().CurrentPlayer())

	e.Undo()
	_, ok = e.Undo()
	require.False(t, ok, "Nothing left to undo")
}

func TestUndoPastForcedPass(t *testing.T) {
	// Black to move; after H8 White has no legal move.
	board := game.Board{
		Black: 0x1f<<56 | square("A1").Mask(),
		White: square("F8").Mask() | square("G8").Mask() | square("B1").Mask(),
	}
	e := NewLocal(nil, nil, WithState(game.FromBoard(board, game.Black)))
	_, err := e.Play(square("H8"))
	require.NoError(t, err, "H8 should be legal")
	played, err := e.Advance(context.Background())
	require.NoError(t, err, "Advance should succeed")
	require.Len(t, played, 1, "White should be passed automatically")
	require.True(t, played[0].Position.IsPass(), "Advanced ply should be a pass")

	undone, ok := e.Undo()
	require.True(t, ok, "Undo should succeed")
	require.Len(t, undone, 2, "Undo should take back the pass and the move before it")
	require.Zero(t, e.State().MoveCount(), "History should be empty")
	require.Equal(t, board, e.State().Board(), "Board should be restored")
	require.Equal(t, game.Black, e.State().CurrentPlayer(), "Black should be to move")

	_, ok = e.Undo()
	require.False(t, ok, "Nothing left to undo")
}

func TestWithStateCopies(t *testing.T) {
	gs := game.NewGameState()
	e := NewLocal(nil, nil, WithState(gs))
	_, err := e.Play(square("D3"))
	require.NoError(t, err)
	require.Zero(t, gs.MoveCount(), "The engine should play on its own copy")
}
