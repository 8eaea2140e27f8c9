package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateStart(t *testing.T) {
	b := NewBoard()
	require.Zero(t, Evaluate(b, Black), "Opening should be balanced for Black")
	require.Zero(t, Evaluate(b, White), "Opening should be balanced for White")
	require.Zero(t, QuickEvaluate(b, Black))
}

func TestEvaluateCorners(t *testing.T) {
	t.Run("corner ownership", func(t *testing.T) {
		b := NewBoard()
		b.Place(Black, mustParse("A1"))

		require.Equal(t, Score(100), evaluateCorners(b, Black))
		require.Equal(t, Score(-100), evaluateCorners(b, White))
		require.Equal(t, Score(100), QuickEvaluate(b, Black))
		require.Greater(t, Evaluate(b, Black), Evaluate(NewBoard(), Black)+90, "A corner should be worth a lot")
	})

	t.Run("x-square next to an empty corner", func(t *testing.T) {
		b := NewBoard()
		b.Place(Black, mustParse("B2"))

		require.Equal(t, Score(-25), evaluateCorners(b, Black))
		require.Equal(t, Score(25), evaluateCorners(b, White))
	})

	t.Run("c-square next to an empty corner", func(t *testing.T) {
		b := NewBoard()
		b.Place(White, mustParse("H2"))

		require.Equal(t, Score(10), evaluateCorners(b, Black))
	})

	t.Run("no penalty once the corner is taken", func(t *testing.T) {
		b := NewBoard()
		b.Place(White, mustParse("A1"))
		b.Place(Black, mustParse("B2"))

		require.Equal(t, Score(-100), evaluateCorners(b, Black))
	})
}

func TestEvaluateGameOver(t *testing.T) {
	t.Run("decisive", func(t *testing.T) {
		b := Board{Black: ^uint64(0) &^ 0xFF, White: 0x01}

		require.Equal(t, ScoreWin-100, Evaluate(b, Black), "Winner scores near ScoreWin")
		require.Equal(t, ScoreLoss+100, Evaluate(b, White), "Loser scores near ScoreLoss")
	})

	t.Run("draw", func(t *testing.T) {
		b := Board{Black: 0xFFFFFFFF00000000, White: 0x00000000FFFFFFFF}
		require.Zero(t, Evaluate(b, Black))
	})
}

func TestStability(t *testing.T) {
	t.Run("filled edge anchored by own corners", func(t *testing.T) {
		b := Board{Black: 0xFF}
		require.Equal(t, 8, countStable(b, Black))
	})

	t.Run("filled edge split between players", func(t *testing.T) {
		b := Board{Black: 0x0F, White: 0xF0}
		require.Equal(t, 4, countStable(b, Black))
		require.Equal(t, 4, countStable(b, White))
		require.Zero(t, evaluateStability(b, Black))
	})

	t.Run("unfilled edge only counts the corner", func(t *testing.T) {
		b := Board{Black: 0x7F}
		require.Equal(t, 1, countStable(b, Black))
	})
}

func TestFrontier(t *testing.T) {
	b := NewBoard()
	require.Equal(t, 2, countFrontier(b, Black))
	require.Equal(t, 2, countFrontier(b, White))
	require.Zero(t, evaluateFrontier(b, Black))
}

func TestDiscWeight(t *testing.T) {
	for _, tc := range []struct {
		empty  int
		weight Score
	}{
		{60, 0},
		{45, 0},
		{44, 1},
		{21, 1},
		{20, 2},
		{11, 2},
		{10, 5},
		{0, 5},
	} {
		require.Equal(t, tc.weight, discWeight(tc.empty), "Weight with %d empty squares", tc.empty)
	}
}
