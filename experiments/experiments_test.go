package experiments

import (
	"context"
	"encoding/csv"
	"net/http/httptest"
	"os"
	"othello/experiments/metrics"
	"othello/searcher/agent"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	return Config{
		Name:            "test",
		GamesPerMatchup: 2,
		RandomPlies:     2,
		Concurrency:     2,
		OutputDir:       t.TempDir(),
		Seed:            7,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: "random", Seed: 3},
			{ID: 2, Kind: "search", Difficulty: "easy"},
		},
		Matchups: []Matchup{{Agent1: 2, Agent2: 1}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err, "Failed to open %s", path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "Failed to read %s", path)
	return rows
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)

	summary, err := Run(context.Background(), cfg)

	require.NoError(t, err)
	require.Len(t, summary.Matchups, 1)
	r := summary.Matchups[0]
	require.Equal(t, 2, r.Agent1Wins+r.Agent2Wins+r.Draws, "Every game should be counted once")

	agents := readCSV(t, filepath.Join(summary.Dir, "agent_configs.csv"))
	require.Len(t, agents, 3, "Header plus one row per agent")

	games := readCSV(t, filepath.Join(summary.Dir, "game_records.csv"))
	require.Len(t, games, 3, "Header plus one row per game")
	require.Equal(t, "black_agent", games[0][2])
	require.Equal(t, []string{"2", "1"}, games[1][2:4], "Agent1 plays Black in the first game")
	require.Equal(t, []string{"1", "2"}, games[2][2:4], "Colours alternate")

	moves := readCSV(t, filepath.Join(summary.Dir, "move_records.csv"))
	require.Greater(t, len(moves), 1, "Moves should be recorded")
}

func TestRunRemoteAgent(t *testing.T) {
	ts := httptest.NewServer(agent.NewAgentServer())
	defer ts.Close()

	cfg := testConfig(t)
	cfg.GamesPerMatchup = 1
	cfg.Agents[1] = metrics.AgentConfig{ID: 2, Kind: "remote", Difficulty: "easy", URL: ts.URL}
	require.NoError(t, cfg.Validate(), "Remote agent config should be valid")

	summary, err := Run(context.Background(), cfg)

	require.NoError(t, err, "Remote games should complete")
	r := summary.Matchups[0]
	require.Equal(t, 1, r.Agent1Wins+r.Agent2Wins+r.Draws, "The game should be counted")

	agents := readCSV(t, filepath.Join(summary.Dir, "agent_configs.csv"))
	require.Equal(t, "url", agents[0][5])
	require.Equal(t, ts.URL, agents[2][5], "Remote agent URL should be recorded")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testConfig(t))

	require.ErrorIs(t, err, context.Canceled)
}

func TestOpeningState(t *testing.T) {
	a := openingState(11, 4)
	b := openingState(11, 4)

	require.Equal(t, 4, a.MoveCount())
	require.Equal(t, a.Board(), b.Board(), "Same seed should give the same opening")
	require.Zero(t, openingState(11, 0).MoveCount())
}

func TestSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.GamesPerMatchup = 3

	jobs := schedule(cfg)

	require.Len(t, jobs, 3)
	require.Equal(t, 2, jobs[0].black.ID)
	require.Equal(t, 1, jobs[1].black.ID)
	require.Equal(t, 2, jobs[2].black.ID)
	require.Equal(t, []int{1, 2, 3}, []int{jobs[0].id, jobs[1].id, jobs[2].id})
}

func TestConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		data := []byte(`
name: strength
games_per_matchup: 4
agents:
  - id: 5
    kind: search
    difficulty: hard
    no_book: true
  - id: 6
    kind: random
matchups:
  - agent1: 5
    agent2: 6
`)
		cfg, err := ParseConfig(data)

		require.NoError(t, err)
		require.Equal(t, "strength", cfg.Name)
		require.Equal(t, 4, cfg.GamesPerMatchup)
		require.Equal(t, DefaultConfig().Concurrency, cfg.Concurrency, "Unset fields keep their default")
		require.Len(t, cfg.Agents, 2)
		require.True(t, cfg.Agents[0].NoBook)
	})

	t.Run("bundled ladder", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join("configs", "ladder.yaml"))
		require.NoError(t, err, "Bundled config should be valid")
		require.Len(t, cfg.Agents, 6)
		require.Len(t, cfg.Matchups, 5)
	})

	t.Run("load from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "experiment.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: from-file\n"), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "from-file", cfg.Name)

		_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	for name, mutate := range map[string]func(*Config){
		"no games":            func(c *Config) { c.GamesPerMatchup = 0 },
		"no concurrency":      func(c *Config) { c.Concurrency = 0 },
		"too many plies":      func(c *Config) { c.RandomPlies = 30 },
		"unknown kind":        func(c *Config) { c.Agents[0].Kind = "oracle" },
		"unknown difficulty":  func(c *Config) { c.Agents[1].Difficulty = "godlike" },
		"missing difficulty":  func(c *Config) { c.Agents[1].Difficulty = "" },
		"duplicate agent ids": func(c *Config) { c.Agents[1].ID = c.Agents[0].ID },
		"unknown agent":       func(c *Config) { c.Matchups[0].Agent2 = 99 },
		"remote without url":  func(c *Config) { c.Agents[1].Kind = "remote" },
		"malformed url":       func(c *Config) { c.Agents[1].Kind, c.Agents[1].URL = "remote", "not a url" },
		"no name":             func(c *Config) { c.Name = "" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate(), "Config with %s should be rejected", name)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("name: [unterminated"))
		require.Error(t, err)
	})
}
