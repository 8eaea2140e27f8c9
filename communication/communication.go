package communication

import "othello/game"

// Header describes how a published game is being played.
type Header struct {
	Mode        string
	PlayerColor *game.Player // nil in two-player games
	Date        string
}

// Snapshot is the JSON view of a published game.
type Snapshot struct {
	Black         uint64   `json:"black"`
	White         uint64   `json:"white"`
	CurrentPlayer string   `json:"current_player"`
	History       []string `json:"history"`
	BlackCount    int      `json:"black_count"`
	WhiteCount    int      `json:"white_count"`
	GameOver      bool     `json:"game_over"`
	Result        string   `json:"result,omitempty"`
	Mode          string   `json:"mode"`
}

// Publisher makes the latest game available to outside readers.
type Publisher interface {
	Publish(state *game.GameState, header Header)
}

func NewSnapshot(state *game.GameState, header Header) Snapshot {
	board := state.Board()
	history := state.History()
	plies := make([]string, len(history))
	for i, e := range history {
		plies[i] = e.Pos.String()
	}
	black, white := state.Counts()

	s := Snapshot{
		Black:         board.Black,
		White:         board.White,
		CurrentPlayer: state.CurrentPlayer().String(),
		History:       plies,
		BlackCount:    black,
		WhiteCount:    white,
		GameOver:      state.IsGameOver(),
		Mode:          header.Mode,
	}
	if result, ok := state.Result(); ok {
		s.Result = result.String()
	}
	return s
}
