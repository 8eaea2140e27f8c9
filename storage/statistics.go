package storage

import (
	"encoding/binary"
	"fmt"
)

const statisticsSize = 13 * 2

// Outcome is a finished game from the human's point of view.
type Outcome uint8

const (
	Win Outcome = iota
	Loss
	Draw
)

type Record struct {
	Wins   uint16
	Losses uint16
	Draws  uint16
}

// Statistics count results per difficulty and two-player games.
type Statistics struct {
	VsCPU          [4]Record // indexed by searcher.Difficulty
	TwoPlayerGames uint16
}

// Record counts one finished game. Two-player games are counted regardless
// of outcome.
func (s *Statistics) Record(mode Mode, outcome Outcome) {
	d, ok := mode.Difficulty()
	if !ok {
		s.TwoPlayerGames++
		return
	}
	r := &s.VsCPU[d]
	switch outcome {
	case Win:
		r.Wins++
	case Loss:
		r.Losses++
	default:
		r.Draws++
	}
}

// Total is the number of games counted.
func (s Statistics) Total() int {
	total := int(s.TwoPlayerGames)
	for _, r := range s.VsCPU {
		total += int(r.Wins) + int(r.Losses) + int(r.Draws)
	}
	return total
}

func (s Statistics) counters() []uint16 {
	values := make([]uint16, 0, statisticsSize/2)
	for _, r := range s.VsCPU {
		values = append(values, r.Wins, r.Losses, r.Draws)
	}
	return append(values, s.TwoPlayerGames)
}

func (s Statistics) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, statisticsSize)
	for _, v := range s.counters() {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	return buf, nil
}

func (s *Statistics) UnmarshalBinary(data []byte) error {
	if len(data) < statisticsSize {
		return fmt.Errorf("%w: statistics need %d bytes, got %d", ErrCorrupt, statisticsSize, len(data))
	}
	read := func(i int) uint16 {
		return binary.LittleEndian.Uint16(data[i*2:])
	}
	*s = Statistics{}
	for d := range s.VsCPU {
		s.VsCPU[d] = Record{Wins: read(d * 3), Losses: read(d*3 + 1), Draws: read(d*3 + 2)}
	}
	s.TwoPlayerGames = read(12)
	return nil
}
