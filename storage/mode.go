package storage

import (
	"fmt"
	"othello/searcher"
	"strings"
)

// Mode is what a game was played as: against the computer at one of the four
// difficulties, or between two people.
type Mode uint8

// TwoPlayer follows the four vs-CPU modes, which share their values with
// searcher.Difficulty.
const TwoPlayer Mode = 4

func VsCPU(d searcher.Difficulty) Mode {
	return Mode(d)
}

// modeFromByte maps every unknown value to TwoPlayer.
func modeFromByte(b byte) Mode {
	if b > byte(searcher.Expert) {
		return TwoPlayer
	}
	return Mode(b)
}

// Difficulty returns the computer's strength, or false for TwoPlayer.
func (m Mode) Difficulty() (searcher.Difficulty, bool) {
	if m >= TwoPlayer {
		return 0, false
	}
	return searcher.Difficulty(m), true
}

func (m Mode) String() string {
	d, ok := m.Difficulty()
	if !ok {
		return "Two Player"
	}
	name := d.String()
	return fmt.Sprintf("vs CPU (%s%s)", strings.ToUpper(name[:1]), name[1:])
}
