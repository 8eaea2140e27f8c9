// Package cli is the interactive terminal front end: a readline shell whose
// commands drive an engine.Local, persist through storage.Store and publish
// the game to an optional export server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"othello/communication"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/review"
	"othello/searcher"
	"othello/searcher/agent"
	"othello/storage"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrQuit        = errors.New("quit")
	errNoGame      = errors.New("no game in progress, type 'new' to start one")
	errNotYourTurn = errors.New("the computer is to move")
)

type Option func(s *Session)

// WithPublisher publishes the game after every change.
func WithPublisher(p communication.Publisher) Option {
	return func(s *Session) {
		s.publisher = p
	}
}

// Session is the state behind the shell: the game being played, how it is
// played and where it is stored.
type Session struct {
	out       io.Writer
	store     *storage.Store
	publisher communication.Publisher
	settings  storage.Settings
	registry  *Registry

	local    *engine.Local
	mode     storage.Mode
	color    game.Player
	finished bool
	whatIf   *review.WhatIf
}

// NewSession falls back to the default settings when the stored ones are
// unreadable.
func NewSession(out io.Writer, store *storage.Store, options ...Option) *Session {
	settings, err := store.LoadSettings()
	if err != nil {
		log.Warn().Err(err).Msg("unreadable settings, using defaults")
	}
	s := &Session{
		out:      out,
		store:    store,
		settings: settings,
	}
	for _, option := range options {
		option(s)
	}
	s.registry = newRegistry()
	return s
}

// Execute runs one command line. It returns ErrQuit after the quit command.
func (s *Session) Execute(line string) error {
	return s.registry.execute(s, line)
}

// Prompt reflects the game in progress.
func (s *Session) Prompt() string {
	if s.local == nil {
		return "othello> "
	}
	state := s.local.State()
	if state.IsGameOver() {
		return "othello [game over]> "
	}
	return fmt.Sprintf("othello [%s %s]> ", s.mode, state.CurrentPlayer())
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) requireGame() error {
	if s.local == nil {
		return errNoGame
	}
	return nil
}

// startGame seats a search agent opposite the human in vs-CPU modes and
// plays up to the first human move.
func (s *Session) startGame(mode storage.Mode, color game.Player, state *game.GameState) error {
	var seats [2]agent.Agent
	if d, ok := mode.Difficulty(); ok {
		seats[color.Opponent()] = agent.NewSearchAgent(searcher.New(d))
	}
	s.local = engine.NewLocal(seats[game.Black], seats[game.White], engine.WithState(state))
	s.mode, s.color, s.finished, s.whatIf = mode, color, false, nil
	log.Info().Msgf("starting %s game", mode)
	return s.advance()
}

// advance lets the computer move and applies forced passes, then finishes the
// game when it is over.
func (s *Session) advance() error {
	played, err := s.local.Advance(context.Background())
	for _, mm := range played {
		s.announce(mm)
	}
	if err != nil {
		return err
	}
	s.publish()
	if s.local.State().IsGameOver() {
		return s.finish()
	}
	return nil
}

func (s *Session) announce(mm metrics.MoveMetric) {
	if mm.Position.IsPass() {
		s.printf("%s has no legal move and passes.\n", mm.Player)
		return
	}
	s.printf("%s plays %s.\n", mm.Player, mm.Position)
}

// finish records the result once: statistics, the archive and the saved slot.
func (s *Session) finish() error {
	if s.finished {
		return nil
	}
	s.finished = true
	state := s.local.State()
	result, _ := state.Result()
	s.printBoard(state)
	s.printf("Game over: %s\n", result)

	stats, err := s.store.LoadStatistics()
	if err != nil {
		return err
	}
	stats.Record(s.mode, outcomeFor(result, s.color))
	if err := s.store.SaveStatistics(stats); err != nil {
		return err
	}
	if _, err := s.store.ArchiveGame(storage.NewGameRecord(state, s.mode, s.color)); err != nil {
		return err
	}
	return s.store.DeleteSavedGame()
}

func outcomeFor(result game.GameResult, color game.Player) storage.Outcome {
	winner, ok := result.WinnerOf()
	switch {
	case !ok:
		return storage.Draw
	case winner == color:
		return storage.Win
	default:
		return storage.Loss
	}
}

func (s *Session) header() communication.Header {
	h := communication.Header{Mode: s.mode.String(), Date: time.Now().Format(time.DateOnly)}
	if _, ok := s.mode.Difficulty(); ok {
		color := s.color
		h.PlayerColor = &color
	}
	return h
}

func (s *Session) publish() {
	if s.publisher != nil && s.local != nil {
		s.publisher.Publish(s.local.State(), s.header())
	}
}

func (s *Session) printBoard(state *game.GameState) {
	s.printf("\n%s", state.Board())
	black, white := state.Counts()
	s.printf("● %d - ○ %d", black, white)
	if !state.IsGameOver() {
		s.printf("   %s to move", state.CurrentPlayer())
	}
	s.printf("\n")
	if s.settings.ShowValidMoves && !state.IsGameOver() {
		s.printf("Valid moves: %s\n", squares(state.LegalMovesBitboard()))
	}
}

func squares(mask uint64) string {
	var names []string
	for pos := range game.Bits(mask) {
		names = append(names, pos.String())
	}
	return strings.Join(names, " ")
}
