package game

import "fmt"

// GameResult is the outcome of a finished game.
type GameResult struct {
	Draw   bool
	Winner Player // meaningless when Draw is set
	Black  int
	White  int
}

func resultFor(b Board) GameResult {
	black, white := b.Count(Black), b.Count(White)
	switch {
	case black > white:
		return GameResult{Winner: Black, Black: black, White: white}
	case white > black:
		return GameResult{Winner: White, Black: black, White: white}
	default:
		return GameResult{Draw: true, Black: black, White: white}
	}
}

// WinnerOf returns the winning player, or false on a draw.
func (r GameResult) WinnerOf() (Player, bool) {
	return r.Winner, !r.Draw
}

// Counts returns the final disc counts as (black, white).
func (r GameResult) Counts() (int, int) {
	return r.Black, r.White
}

func (r GameResult) String() string {
	if r.Draw {
		return fmt.Sprintf("Draw %d-%d", r.Black, r.White)
	}
	return fmt.Sprintf("%s wins %d-%d", r.Winner, r.Black, r.White)
}

// WinnerName is "black", "white" or "draw".
func (r GameResult) WinnerName() string {
	switch {
	case r.Draw:
		return "draw"
	case r.Winner == Black:
		return "black"
	default:
		return "white"
	}
}
