package metrics

import (
	"othello/game"
	"sync/atomic"
	"time"
)

// Mode is how a search arrived at its move.
type Mode string

const (
	ModeForced    Mode = "forced"
	ModeBook      Mode = "book"
	ModeEndgame   Mode = "endgame"
	ModeAlphaBeta Mode = "alphabeta"
	ModeRandom    Mode = "random"
)

type SearchMetric struct {
	Difficulty string
	Mode       Mode
	Depth      int
	Nodes      int
	Score      game.Score
	Duration   time.Duration
}

type MoveMetric struct {
	Step     int
	Player   game.Player
	Position game.Position // PassPosition for a forced pass
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         string // "black", "white" or "draw"
	Black          int
	White          int
	Plies          int
	Passes         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Collector accumulates statistics for one search at a time.
type Collector interface {
	Start(difficulty string, depth int)
	SetMode(mode Mode)
	AddNode()
	Complete(score game.Score) SearchMetric
}

type collector struct {
	difficulty string
	depth      int
	mode       Mode
	startTime  time.Time
	nodes      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(difficulty string, depth int) {
	m.startTime = time.Now()
	m.difficulty = difficulty
	m.depth = depth
	m.mode = ""
	m.nodes.Store(0)
}

func (m *collector) SetMode(mode Mode) {
	m.mode = mode
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete(score game.Score) SearchMetric {
	return SearchMetric{
		Difficulty: m.difficulty,
		Mode:       m.mode,
		Depth:      m.depth,
		Nodes:      int(m.nodes.Load()),
		Score:      score,
		Duration:   time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(difficulty string, depth int)     {}
func (m *dummyCollector) SetMode(mode Mode)                      {}
func (m *dummyCollector) AddNode()                               {}
func (m *dummyCollector) Complete(score game.Score) SearchMetric { return SearchMetric{} }
