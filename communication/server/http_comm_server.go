package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"othello/communication"
	"othello/export"
	"othello/game"
	"sync"

	"github.com/rs/zerolog/log"
)

type ServerCommunicator struct {
	gameState *game.GameState
	header    communication.Header
	mutex     sync.RWMutex
	server    *http.Server
}

var _ communication.Publisher = (*ServerCommunicator)(nil)

// NewServerCommunicator returns a communicator with nothing published yet.
func NewServerCommunicator() *ServerCommunicator {
	return &ServerCommunicator{}
}

// Handler serves GET /record and GET /state.
func (sc *ServerCommunicator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /record", sc.handleRecord)
	mux.HandleFunc("GET /state", sc.handleState)
	return mux
}

// Start listens on addr in the background and returns the bound address.
func (sc *ServerCommunicator) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	sc.server = &http.Server{Handler: sc.Handler()}
	go func() {
		if err := sc.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("export server stopped")
		}
	}()
	log.Info().Msgf("serving game records on %s", ln.Addr())
	return ln.Addr().String(), nil
}

func (sc *ServerCommunicator) Shutdown(ctx context.Context) error {
	if sc.server == nil {
		return nil
	}
	return sc.server.Shutdown(ctx)
}

// Publish replaces the served game with a copy of state.
func (sc *ServerCommunicator) Publish(state *game.GameState, header communication.Header) {
	snapshot := state.Clone()
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.gameState = snapshot
	sc.header = header
}

func (sc *ServerCommunicator) published() (*game.GameState, communication.Header) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return sc.gameState, sc.header
}

func (sc *ServerCommunicator) handleRecord(w http.ResponseWriter, r *http.Request) {
	gs, header := sc.published()
	if gs == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprint(w, export.FormatGameRecord(gs, header.Mode, header.PlayerColor, header.Date)); err != nil {
		log.Error().Err(err).Msg("failed to write game record")
	}
}

func (sc *ServerCommunicator) handleState(w http.ResponseWriter, r *http.Request) {
	gs, header := sc.published()
	if gs == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(communication.NewSnapshot(gs, header)); err != nil {
		log.Error().Err(err).Msg("failed to encode game state")
	}
}
