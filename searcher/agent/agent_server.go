package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"strings"

	"github.com/rs/zerolog/log"
)

// MoveRequest asks for the move of Player on the board given by the two
// disc masks.
type MoveRequest struct {
	Black      uint64 `json:"black"`
	White      uint64 `json:"white"`
	Player     string `json:"player"`
	Difficulty string `json:"difficulty"`
	NoBook     bool   `json:"no_book,omitempty"`
}

type MoveResponse struct {
	Position string               `json:"position"` // "--" when the player has to pass
	Found    bool                 `json:"found"`
	Metric   metrics.SearchMetric `json:"metric"`
}

func (r MoveRequest) parse() (game.Board, game.Player, *searcher.Searcher, error) {
	board := game.Board{Black: r.Black, White: r.White}
	if board.Black&board.White != 0 {
		return board, 0, nil, errors.New("black and white discs overlap")
	}

	var player game.Player
	switch strings.ToLower(r.Player) {
	case "black":
		player = game.Black
	case "white":
		player = game.White
	default:
		return board, 0, nil, fmt.Errorf("unknown player %q", r.Player)
	}

	difficulty, ok := searcher.ParseDifficulty(r.Difficulty)
	if !ok {
		return board, 0, nil, fmt.Errorf("unknown difficulty %q", r.Difficulty)
	}
	options := []searcher.Option{searcher.WithMetrics()}
	if r.NoBook {
		options = append(options, searcher.WithoutOpeningBook())
	}
	return board, player, searcher.New(difficulty, options...), nil
}

// NewAgentServer serves POST /findmove, answering MoveRequests with the
// searcher's choice.
func NewAgentServer() http.Handler {
	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", handleFindMove)
	return mux
}

// StartAgentServer serves move searches on addr until the server fails.
func StartAgentServer(addr string) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, NewAgentServer())
}

func handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	board, player, s, err := req.parse()
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	pos, metric, ok := s.Search(board, player)
	resp := MoveResponse{Position: game.PassPosition.String(), Found: ok, Metric: metric}
	if ok {
		resp.Position = pos.String()
	}
	log.Debug().Msgf("agent server: %s %s plays %s", req.Difficulty, player, resp.Position)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}
