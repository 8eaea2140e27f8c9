package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	require.Equal(t, Black, gs.CurrentPlayer(), "Black should move first")
	require.Zero(t, gs.MoveCount(), "History should start empty")
	require.False(t, gs.IsGameOver(), "A new game should be in progress")
	_, ok := gs.Result()
	require.False(t, ok, "Result should be undefined while in progress")
	_, ok = gs.LastMove()
	require.False(t, ok, "There should be no last move")
}

func TestMakeMove(t *testing.T) {
	t.Run("legal move", func(t *testing.T) {
		gs := NewGameState()

		m, ok := gs.MakeMove(mustParse("D3"))

		require.True(t, ok, "D3 should be legal")
		require.Equal(t, mustParse("D3"), m.Pos)
		require.Equal(t, 1, m.FlipCount(), "D3 should flip one disc")
		require.Equal(t, White, gs.CurrentPlayer(), "Turn should pass to White")
		require.Equal(t, 1, gs.MoveCount())
		black, white := gs.Counts()
		require.Equal(t, 4, black)
		require.Equal(t, 1, white)
	})

	t.Run("illegal moves leave the game untouched", func(t *testing.T) {
		gs := NewGameState()
		before := gs.Clone()

		_, ok := gs.MakeMove(mustParse("D4"))
		require.False(t, ok, "Occupied square should be rejected")
		_, ok = gs.MakeMove(mustParse("A1"))
		require.False(t, ok, "Square without captures should be rejected")
		_, ok = gs.MakeMove(PassPosition)
		require.False(t, ok, "Pass sentinel is not a square")

		require.Equal(t, before, gs, "State should be unchanged")
	})

	t.Run("resets consecutive passes", func(t *testing.T) {
		b := EmptyBoard()
		b.Place(Black, mustParse("A1"))
		b.Place(White, mustParse("B1"))
		gs := FromBoard(b, White)

		require.True(t, gs.Pass(), "White has nothing to capture")
		require.Equal(t, 1, gs.ConsecutivePasses())
		_, ok := gs.MakeMove(mustParse("C1"))
		require.True(t, ok)
		require.Zero(t, gs.ConsecutivePasses(), "A placement should reset the pass counter")
	})
}

func TestUndo(t *testing.T) {
	t.Run("restores the opening", func(t *testing.T) {
		gs := NewGameState()
		gs.MakeMove(mustParse("D3"))

		e, ok := gs.Undo()

		require.True(t, ok)
		require.Equal(t, mustParse("D3"), e.Pos)
		require.Equal(t, Black, e.Player)
		require.Equal(t, Black, gs.CurrentPlayer())
		require.Zero(t, gs.MoveCount())
		require.Equal(t, NewBoard(), gs.Board(), "Board should be back to the opening")
	})

	t.Run("empty history", func(t *testing.T) {
		gs := NewGameState()
		_, ok := gs.Undo()
		require.False(t, ok, "Nothing to undo")
		require.Equal(t, NewGameState(), gs)
	})

	t.Run("is the inverse of every ply", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for game := 0; game < 25; game++ {
			gs := NewGameState()
			for !gs.IsGameOver() && gs.MoveCount() < MaxHistory {
				before := gs.Clone()
				playRandom(rng, gs, 1)
				after := gs.Clone()

				_, ok := gs.Undo()
				require.True(t, ok)
				require.Equal(t, before.Board(), gs.Board(), "Undo should restore the board")
				require.Equal(t, before.CurrentPlayer(), gs.CurrentPlayer(), "Undo should restore the player")
				require.Equal(t, before.ConsecutivePasses(), gs.ConsecutivePasses(), "Undo should restore the pass counter")
				require.Equal(t, before.MoveCount(), gs.MoveCount())

				gs = after
			}
		}
	})

	t.Run("pass", func(t *testing.T) {
		b := EmptyBoard()
		b.Place(Black, mustParse("A1"))
		b.Place(White, mustParse("B1"))
		gs := FromBoard(b, White)
		require.True(t, gs.Pass())

		e, ok := gs.Undo()

		require.True(t, ok)
		require.True(t, e.IsPass())
		require.Equal(t, White, gs.CurrentPlayer(), "Turn should return to the passing player")
		require.Zero(t, gs.ConsecutivePasses())
		require.Equal(t, b, gs.Board(), "A pass never touches the board")
	})
}

func TestPass(t *testing.T) {
	t.Run("only without legal moves", func(t *testing.T) {
		gs := NewGameState()
		require.False(t, gs.Pass(), "Black has moves and may not pass")
		require.Zero(t, gs.MoveCount(), "A refused pass is not recorded")
		require.Equal(t, Black, gs.CurrentPlayer())
	})

	t.Run("both sides stuck ends the game", func(t *testing.T) {
		b := Board{Black: ^uint64(0) &^ 0xFF, White: 0x01}
		gs := FromBoard(b, White)

		require.False(t, gs.HasMoves(), "White should have no moves")
		require.True(t, gs.Pass(), "White should be allowed to pass")
		require.Equal(t, Black, gs.CurrentPlayer(), "Turn should go to Black")
		require.False(t, gs.IsGameOver(), "One pass does not end the game")

		require.False(t, gs.HasMoves(), "Black should have no moves either")
		require.True(t, gs.Pass(), "Black should be allowed to pass")
		require.True(t, gs.IsGameOver(), "Two passes in a row end the game")

		res, ok := gs.Result()
		require.True(t, ok)
		require.False(t, res.Draw)
		require.Equal(t, Black, res.Winner)
		require.Equal(t, 56, res.Black)
		require.Equal(t, 1, res.White)
	})
}

func TestGameOver(t *testing.T) {
	t.Run("full board split evenly is a draw", func(t *testing.T) {
		gs := FromBoard(Board{Black: 0xFFFFFFFF00000000, White: 0x00000000FFFFFFFF}, Black)

		require.True(t, gs.IsGameOver())
		res, ok := gs.Result()
		require.True(t, ok)
		require.True(t, res.Draw, "Equal counts should draw")
		require.Equal(t, 32, res.Black)
		require.Equal(t, "Draw 32-32", res.String())
	})

	t.Run("winner string", func(t *testing.T) {
		gs := FromBoard(Board{Black: 0xFFFFFFFFFF000000, White: 0x0000000000FFFFFF}, Black)
		res, ok := gs.Result()
		require.True(t, ok)
		winner, decided := res.WinnerOf()
		require.True(t, decided)
		require.Equal(t, Black, winner)
		require.Equal(t, "Black wins 40-24", res.String())
	})
}

func TestHistory(t *testing.T) {
	gs := NewGameState()
	gs.MakeMove(mustParse("D3"))
	gs.MakeMove(mustParse("C3"))

	history := gs.History()
	require.Len(t, history, 2)
	require.Equal(t, mustParse("D3"), history[0].Pos)
	require.Equal(t, Black, history[0].Player)
	require.Equal(t, mustParse("C3"), history[1].Pos)
	require.Equal(t, White, history[1].Player)

	history[0].Pos = 0
	e, ok := gs.HistoryAt(0)
	require.True(t, ok)
	require.Equal(t, mustParse("D3"), e.Pos, "Returned history should be a copy")

	last, ok := gs.LastMove()
	require.True(t, ok)
	require.Equal(t, mustParse("C3"), last.Pos)

	_, ok = gs.HistoryAt(2)
	require.False(t, ok)
}

func TestCloneAtMove(t *testing.T) {
	t.Run("replays a prefix", func(t *testing.T) {
		gs := NewGameState()
		gs.MakeMove(mustParse("D3"))
		gs.MakeMove(mustParse("C3"))
		gs.MakeMove(mustParse("B3"))

		clone := gs.CloneAtMove(1)

		require.Equal(t, 1, clone.MoveCount())
		require.Equal(t, White, clone.CurrentPlayer())
		require.Equal(t, 3, gs.MoveCount(), "Source game should be untouched")
	})

	t.Run("matches replaying history", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		gs := NewGameState()
		playRandom(rng, gs, 60)
		history := gs.History()

		for k := 0; k <= len(history); k++ {
			replay := NewGameState()
			for _, e := range history[:k] {
				if e.IsPass() {
					require.True(t, replay.Pass())
				} else {
					_, ok := replay.MakeMove(e.Pos)
					require.True(t, ok)
				}
			}
			require.Equal(t, replay.Board(), gs.BoardAtMove(k), "Prefix %d should replay identically", k)
			require.Equal(t, replay.CurrentPlayer(), gs.CloneAtMove(k).CurrentPlayer())
		}
		require.Equal(t, gs.Board(), gs.BoardAtMove(len(history)+10), "Clamped index should give the current board")
	})

	t.Run("clone branches independently", func(t *testing.T) {
		gs := NewGameState()
		branch := gs.Clone()
		branch.MakeMove(mustParse("D3"))

		require.Zero(t, gs.MoveCount(), "Branching must not affect the source game")
		require.Equal(t, NewBoard(), gs.Board())
	})
}

func TestHistoryCapacity(t *testing.T) {
	b := EmptyBoard()
	b.Place(Black, mustParse("A1"))
	gs := FromBoard(b, White)
	for i := 0; i < MaxHistory; i++ {
		gs.record(HistoryEntry{Pos: PassPosition, Player: White})
	}

	gs.record(HistoryEntry{Pos: 5, Player: Black})

	require.Equal(t, MaxHistory, gs.MoveCount(), "History should stop growing at capacity")
	last, _ := gs.LastMove()
	require.True(t, last.IsPass(), "Entries past capacity are dropped")
}

func TestMobility(t *testing.T) {
	gs := NewGameState()
	require.Equal(t, 4, gs.Mobility(Black))
	require.Equal(t, 4, gs.Mobility(White))
	require.Equal(t, 4, gs.CountLegalMoves())
	moves := gs.LegalMoves()
	require.Equal(t, moves.Bitboard(), gs.LegalMovesBitboard())
	require.True(t, gs.IsLegal(mustParse("F5")))
	require.False(t, gs.IsLegal(mustParse("F4")))
	require.Equal(t, 60, gs.EmptyCount())
}
