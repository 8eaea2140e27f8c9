package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one computer player in an experiment.
type AgentConfig struct {
	ID         int    `yaml:"id" validate:"gte=0"`
	Kind       string `yaml:"kind" validate:"required,oneof=search random remote"`
	Difficulty string `yaml:"difficulty" validate:"omitempty,oneof=easy medium hard expert"`
	NoBook     bool   `yaml:"no_book"`
	Seed       uint64 `yaml:"seed"`
	URL        string `yaml:"url" validate:"omitempty,url"` // agent server of a remote agent
}

type GameRecord struct {
	ID         int
	Matchup    int
	BlackAgent int // AgentConfig.ID
	WhiteAgent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <outputDir>/<name>/<timestamp> for the experiment files.
func NewWriter(outputDir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(outputDir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(file string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", file, cerr)
		}
	}()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			config.Difficulty,
			strconv.FormatBool(config.NoBook),
			strconv.FormatUint(config.Seed, 10),
			config.URL,
		})
	}
	return w.writeCSV("agent_configs.csv", []string{"id", "kind", "difficulty", "no_book", "seed", "url"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Matchup),
			strconv.Itoa(record.BlackAgent),
			strconv.Itoa(record.WhiteAgent),
			record.StartingPlayer.String(),
			record.Winner,
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			strconv.Itoa(record.Plies),
			strconv.Itoa(record.Passes),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "matchup", "black_agent", "white_agent", "starting_player", "winner", "black_discs", "white_discs", "plies", "passes", "start_time", "end_time", "duration"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Position.String(),
			string(record.Mode),
			record.Difficulty,
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(int(record.Score)),
			record.Duration.String(),
		})
	}
	header := []string{"game", "step", "player", "position", "mode", "difficulty", "depth", "nodes", "score", "duration"}
	return w.writeCSV("move_records.csv", header, rows)
}
