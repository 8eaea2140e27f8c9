package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"othello/game"
)

var (
	ErrCorrupt     = errors.New("corrupt saved game")
	ErrNoSavedGame = errors.New("no saved game")
)

const (
	headerSize = 8 + 8 + 1 + 1 + 1 + 2
	entrySize  = 1 + 8
)

// SavedGame is a game in progress together with how it is being played.
type SavedGame struct {
	State       *game.GameState
	PlayerColor game.Player // the human's colour in vs-CPU games
	Mode        Mode
}

// EncodeGame writes the board, the player to move, the human's colour, the
// mode and every history entry, little-endian.
func EncodeGame(w io.Writer, sg SavedGame) error {
	history := sg.State.History()
	board := sg.State.Board()

	buf := make([]byte, 0, headerSize+len(history)*entrySize)
	buf = binary.LittleEndian.AppendUint64(buf, board.Black)
	buf = binary.LittleEndian.AppendUint64(buf, board.White)
	buf = append(buf, byte(sg.State.CurrentPlayer()), byte(sg.PlayerColor), byte(sg.Mode))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(history)))
	for _, e := range history {
		buf = append(buf, byte(e.Pos))
		buf = binary.LittleEndian.AppendUint64(buf, e.Flipped)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write saved game: %w", err)
	}
	return nil
}

func playerFromByte(b byte) game.Player {
	if b == 0 {
		return game.Black
	}
	return game.White
}

// DecodeGame rebuilds a saved game by replaying its history from the
// standard opening. Replay stops quietly at a truncated entry. An illegal
// move, or a complete history that does not reproduce the stored board,
// is ErrCorrupt.
func DecodeGame(r io.Reader) (SavedGame, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return SavedGame{}, fmt.Errorf("%w: short header: %v", ErrCorrupt, err)
	}
	stored := game.Board{
		Black: binary.LittleEndian.Uint64(header[0:8]),
		White: binary.LittleEndian.Uint64(header[8:16]),
	}
	current := playerFromByte(header[16])
	sg := SavedGame{
		PlayerColor: playerFromByte(header[17]),
		Mode:        modeFromByte(header[18]),
	}
	count := int(binary.LittleEndian.Uint16(header[19:21]))

	state := game.NewGameState()
	complete := true
	for i := 0; i < count; i++ {
		var entry [entrySize]byte
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			complete = false
			break
		}
		pos := game.Position(entry[0])
		if pos.IsPass() {
			if !state.Pass() {
				return SavedGame{}, fmt.Errorf("%w: illegal pass at ply %d", ErrCorrupt, i+1)
			}
			continue
		}
		m, ok := state.MakeMove(pos)
		if !ok {
			return SavedGame{}, fmt.Errorf("%w: illegal move %s at ply %d", ErrCorrupt, pos, i+1)
		}
		if m.Flipped != binary.LittleEndian.Uint64(entry[1:]) {
			return SavedGame{}, fmt.Errorf("%w: flips of %s at ply %d do not match", ErrCorrupt, pos, i+1)
		}
	}

	if complete && (state.Board() != stored || state.CurrentPlayer() != current) {
		return SavedGame{}, fmt.Errorf("%w: replayed position does not match the stored board", ErrCorrupt)
	}
	sg.State = state
	return sg, nil
}
