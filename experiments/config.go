package experiments

import (
	"errors"
	"fmt"
	"os"
	"othello/experiments/metrics"
	"othello/meta"
	"othello/utils"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Matchup struct {
	Agent1 int `yaml:"agent1"`
	Agent2 int `yaml:"agent2"`
}

// Config describes an experiment: which agents meet, how often, and where
// the results go.
type Config struct {
	Name            string                `yaml:"name" validate:"required"`
	GamesPerMatchup int                   `yaml:"games_per_matchup" validate:"gte=1"`
	RandomPlies     int                   `yaml:"random_plies" validate:"gte=0,lte=20"`
	Concurrency     int                   `yaml:"concurrency" validate:"gte=1"`
	OutputDir       string                `yaml:"output_dir" validate:"required"`
	Seed            uint64                `yaml:"seed"`
	Agents          []metrics.AgentConfig `yaml:"agents" validate:"required,min=1,unique=ID,dive"`
	Matchups        []Matchup             `yaml:"matchups" validate:"required,min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func DefaultConfig() Config {
	return Config{
		Name:            "difficulty",
		GamesPerMatchup: meta.GAMES_PER_MATCHUP,
		RandomPlies:     meta.RANDOM_PLIES,
		Concurrency:     meta.CONCURRENCY,
		OutputDir:       meta.OUTPUT_DIR,
		Seed:            1,
		Agents: []metrics.AgentConfig{
			{ID: 0, Kind: "random", Seed: 1},
			{ID: 1, Kind: "search", Difficulty: "easy"},
			{ID: 2, Kind: "search", Difficulty: "medium"},
			{ID: 3, Kind: "search", Difficulty: "hard"},
		},
		Matchups: []Matchup{
			{Agent1: 1, Agent2: 0},
			{Agent1: 2, Agent2: 1},
			{Agent1: 3, Agent2: 2},
		},
	}
}

// ParseConfig reads YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse experiment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid experiment config: %w", err)
	}
	for _, a := range c.Agents {
		if a.Kind != "random" && a.Difficulty == "" {
			return fmt.Errorf("invalid experiment config: %s agent %d needs a difficulty", a.Kind, a.ID)
		}
		if a.Kind == "remote" && a.URL == "" {
			return fmt.Errorf("invalid experiment config: remote agent %d needs a url", a.ID)
		}
	}
	for i, m := range c.Matchups {
		for _, id := range []int{m.Agent1, m.Agent2} {
			if _, ok := c.agent(id); !ok {
				return fmt.Errorf("invalid experiment config: matchup %d: %w: %d", i, errUnknownAgent, id)
			}
		}
	}
	return nil
}

var errUnknownAgent = errors.New("unknown agent")

func (c Config) agent(id int) (metrics.AgentConfig, bool) {
	return utils.Find(c.Agents, func(a metrics.AgentConfig) bool { return a.ID == id })
}
