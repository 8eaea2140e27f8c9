package storage

import (
	"fmt"
	"othello/searcher"
)

const settingsSize = 10

// Settings are the player's preferences, one byte each.
type Settings struct {
	ShowCoordinates  bool
	ShowValidMoves   bool
	AllowUndo        bool
	DangerZones      bool
	FlipAnimation    bool
	AIThinkAnimation bool
	AIDelay          bool
	Vibration        bool
	Sound            bool
	LastDifficulty   searcher.Difficulty
}

func DefaultSettings() Settings {
	return Settings{
		ShowValidMoves:   true,
		AllowUndo:        true,
		FlipAnimation:    true,
		AIThinkAnimation: true,
		AIDelay:          true,
		Vibration:        true,
		Sound:            true,
		LastDifficulty:   searcher.Medium,
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (s Settings) MarshalBinary() ([]byte, error) {
	return []byte{
		boolByte(s.ShowCoordinates),
		boolByte(s.ShowValidMoves),
		boolByte(s.AllowUndo),
		boolByte(s.DangerZones),
		boolByte(s.FlipAnimation),
		boolByte(s.AIThinkAnimation),
		boolByte(s.AIDelay),
		boolByte(s.Vibration),
		boolByte(s.Sound),
		byte(s.LastDifficulty),
	}, nil
}

// UnmarshalBinary ignores bytes past the known fields.
func (s *Settings) UnmarshalBinary(data []byte) error {
	if len(data) < settingsSize {
		return fmt.Errorf("%w: settings need %d bytes, got %d", ErrCorrupt, settingsSize, len(data))
	}
	*s = Settings{
		ShowCoordinates:  data[0] != 0,
		ShowValidMoves:   data[1] != 0,
		AllowUndo:        data[2] != 0,
		DangerZones:      data[3] != 0,
		FlipAnimation:    data[4] != 0,
		AIThinkAnimation: data[5] != 0,
		AIDelay:          data[6] != 0,
		Vibration:        data[7] != 0,
		Sound:            data[8] != 0,
		LastDifficulty:   searcher.Difficulty(data[9]),
	}
	return nil
}
