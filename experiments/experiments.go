package experiments

import (
	"context"
	"fmt"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// MatchupResult counts outcomes from Agent1's point of view.
type MatchupResult struct {
	Matchup
	Agent1Wins int
	Agent2Wins int
	Draws      int
}

type Summary struct {
	Dir      string
	Matchups []MatchupResult
}

type job struct {
	id      int
	matchup int
	game    int
	black   metrics.AgentConfig
	white   metrics.AgentConfig
}

type outcome struct {
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

// Run plays every matchup of cfg and writes the records to disk.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	log.Info().Msgf("starting %s experiment...", cfg.Name)

	jobs := schedule(cfg)
	outcomes := make([]outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", j.matchup+1, len(cfg.Matchups), j.game+1, cfg.GamesPerMatchup)
			o, err := runGame(gctx, cfg, j)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			outcomes[i] = o
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", j.matchup+1, len(cfg.Matchups), j.game+1, o.game.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	log.Info().Msgf("completed %s experiment", cfg.Name)

	summary := summarize(cfg, jobs, outcomes)
	dir, err := store(cfg, jobs, outcomes)
	if err != nil {
		return Summary{}, err
	}
	summary.Dir = dir
	return summary, nil
}

// schedule alternates colours between consecutive games of a matchup.
func schedule(cfg Config) []job {
	var jobs []job
	for mi, m := range cfg.Matchups {
		agent1, _ := cfg.agent(m.Agent1)
		agent2, _ := cfg.agent(m.Agent2)
		for gi := 0; gi < cfg.GamesPerMatchup; gi++ {
			j := job{id: len(jobs) + 1, matchup: mi, game: gi, black: agent1, white: agent2}
			if gi%2 == 1 {
				j.black, j.white = agent2, agent1
			}
			jobs = append(jobs, j)
		}
	}
	return jobs
}

func runGame(ctx context.Context, cfg Config, j job) (outcome, error) {
	state := openingState(cfg.Seed+uint64(j.id), cfg.RandomPlies)
	e := engine.NewLocal(createAgent(j.black, j.id), createAgent(j.white, j.id), engine.WithState(state))

	gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return outcome{}, err
	}
	return outcome{game: gameMetric, moves: moveMetrics}, nil
}

// openingState plays plies random legal plies from the standard opening.
func openingState(seed uint64, plies int) *game.GameState {
	rng := rand.New(rand.NewSource(seed))
	state := game.NewGameState()
	for i := 0; i < plies && !state.IsGameOver(); i++ {
		pos, ok := searcher.RandomMove(state.Board(), state.CurrentPlayer(), rng)
		if !ok {
			state.Pass()
			continue
		}
		state.MakeMove(pos)
	}
	return state
}

func createAgent(config metrics.AgentConfig, gameID int) agent.Agent {
	switch config.Kind {
	case "random":
		return agent.NewRandomAgent(config.Seed + uint64(gameID))
	case "remote":
		return agent.NewRemoteAgent(config.URL, config.Difficulty, config.NoBook)
	}

	difficulty, _ := searcher.ParseDifficulty(config.Difficulty)
	options := []searcher.Option{searcher.WithMetrics()}
	if config.NoBook {
		options = append(options, searcher.WithoutOpeningBook())
	}
	return agent.NewSearchAgent(searcher.New(difficulty, options...))
}

func summarize(cfg Config, jobs []job, outcomes []outcome) Summary {
	results := make([]MatchupResult, len(cfg.Matchups))
	for i, m := range cfg.Matchups {
		results[i].Matchup = m
	}
	for i, j := range jobs {
		r := &results[j.matchup]
		agent1Colour := "black"
		if j.black.ID != r.Agent1 {
			agent1Colour = "white"
		}
		switch outcomes[i].game.Winner {
		case "draw":
			r.Draws++
		case agent1Colour:
			r.Agent1Wins++
		default:
			r.Agent2Wins++
		}
	}
	return Summary{Matchups: results}
}

func store(cfg Config, jobs []job, outcomes []outcome) (string, error) {
	gameRecords := make([]metrics.GameRecord, 0, len(jobs))
	moveRecords := []metrics.MoveRecord{}
	for i, j := range jobs {
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         j.id,
			Matchup:    j.matchup,
			BlackAgent: j.black.ID,
			WhiteAgent: j.white.ID,
			GameMetric: outcomes[i].game,
		})
		for _, mm := range outcomes[i].moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
		}
	}

	// Store experiment metadata
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
