package searcher

import (
	"math"
	"othello/game"
	"strings"
)

// Window bounds strictly outside every score an evaluation can produce.
const (
	infinity    game.Score = math.MaxInt32
	negInfinity game.Score = -math.MaxInt32
)

// Difficulty selects a fixed search configuration.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

type level struct {
	name      string
	depth     int
	endgame   bool
	threshold int // empty squares at or below which the endgame solver runs
	book      bool
}

var levels = [...]level{
	Easy:   {name: "easy", depth: 2},
	Medium: {name: "medium", depth: 4},
	Hard:   {name: "hard", depth: 6, endgame: true, threshold: 12},
	Expert: {name: "expert", depth: 8, endgame: true, threshold: 14, book: true},
}

// Difficulties lists every level from weakest to strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Expert}
}

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(name string) (Difficulty, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, l := range levels {
		if l.name == name {
			return Difficulty(d), true
		}
	}
	return Easy, false
}

// IsValid reports whether d is one of the four levels.
func (d Difficulty) IsValid() bool {
	return int(d) < len(levels)
}

// Unknown levels behave like Expert.
func (d Difficulty) level() level {
	if !d.IsValid() {
		return levels[Expert]
	}
	return levels[d]
}

func (d Difficulty) String() string {
	return d.level().name
}

// Depth is the number of plies searched by alpha-beta.
func (d Difficulty) Depth() int {
	return d.level().depth
}

func (d Difficulty) UseEndgameSolver() bool {
	return d.level().endgame
}

func (d Difficulty) EndgameThreshold() int {
	return d.level().threshold
}

func (d Difficulty) UseOpeningBook() bool {
	return d.level().book
}
