// Package export renders finished or in-progress games as text.
package export

import (
	"fmt"
	"othello/game"
	"strings"
)

// FormatGameRecord renders a transcript: a header, the numbered move pairs
// and the final disc count. playerColor is omitted from the header when nil.
func FormatGameRecord(state *game.GameState, mode string, playerColor *game.Player, date string) string {
	var sb strings.Builder

	sb.WriteString("[Othello Game Record]\n")
	fmt.Fprintf(&sb, "Date: %s\n", date)
	fmt.Fprintf(&sb, "Mode: %s\n", mode)
	if playerColor != nil {
		fmt.Fprintf(&sb, "Player: %s\n", *playerColor)
	}
	if result, ok := state.Result(); ok {
		fmt.Fprintf(&sb, "Result: %s\n", result)
	}

	sb.WriteString("\nMoves:\n")
	history := state.History()
	for i := 0; i < len(history); i += 2 {
		second := ""
		if i+1 < len(history) {
			second = history[i+1].Pos.String()
		}
		fmt.Fprintf(&sb, "%2d. %s %s\n", i/2+1, history[i].Pos, second)
	}

	black, white := state.Counts()
	fmt.Fprintf(&sb, "\nFinal: ● %d - ○ %d\n", black, white)
	return sb.String()
}

// FormatCompact lists every ply separated by spaces, "--" for a pass.
func FormatCompact(state *game.GameState) string {
	history := state.History()
	plies := make([]string, len(history))
	for i, e := range history {
		plies[i] = e.Pos.String()
	}
	return strings.Join(plies, " ")
}
