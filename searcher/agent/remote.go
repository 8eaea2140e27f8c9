package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"othello/experiments/metrics"
	"othello/game"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type remoteAgent struct {
	serverURL  string
	difficulty string
	noBook     bool
	client     *http.Client
}

// NewRemoteAgent returns an agent that asks an agent server for its moves.
func NewRemoteAgent(serverURL, difficulty string, noBook bool) Agent {
	return &remoteAgent{
		serverURL:  strings.TrimSuffix(serverURL, "/"),
		difficulty: difficulty,
		noBook:     noBook,
		client:     &http.Client{Timeout: time.Minute},
	}
}

// FindMove reports false when the server cannot be reached or answers with
// a square that is not legal.
func (a *remoteAgent) FindMove(state *game.GameState) (game.Position, metrics.SearchMetric, bool) {
	resp, err := a.request(state)
	if err != nil {
		log.Error().Err(err).Msg("remote agent failed")
		return 0, metrics.SearchMetric{}, false
	}
	if !resp.Found {
		return 0, resp.Metric, false
	}
	pos, ok := game.ParsePosition(resp.Position)
	if !ok || !state.IsLegal(pos) {
		log.Error().Msgf("remote agent answered %q", resp.Position)
		return 0, resp.Metric, false
	}
	return pos, resp.Metric, true
}

func (a *remoteAgent) request(state *game.GameState) (MoveResponse, error) {
	board := state.Board()
	body, err := json.Marshal(MoveRequest{
		Black:      board.Black,
		White:      board.White,
		Player:     strings.ToLower(state.CurrentPlayer().String()),
		Difficulty: a.difficulty,
		NoBook:     a.noBook,
	})
	if err != nil {
		return MoveResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpResp, err := a.client.Post(a.serverURL+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return MoveResponse{}, fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return MoveResponse{}, fmt.Errorf("agent server answered %s", httpResp.Status)
	}

	var resp MoveResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return MoveResponse{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return resp, nil
}
