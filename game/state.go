package game

// HistoryEntry records one ply. Pos is PassPosition for a pass.
type HistoryEntry struct {
	Pos     Position
	Flipped uint64
	Player  Player
}

// IsPass reports whether the entry records a pass.
func (e HistoryEntry) IsPass() bool {
	return e.Pos.IsPass()
}

// GameState is a game in progress: the board, the player to move, and the
// history needed to undo or replay every ply. A GameState is not safe for
// concurrent mutation; use Clone to branch.
type GameState struct {
	board             Board
	currentPlayer     Player
	history           [MaxHistory]HistoryEntry
	historyLen        int
	consecutivePasses int
}

// NewGameState starts a game from the standard opening with Black to move.
func NewGameState() *GameState {
	return &GameState{
		board:         NewBoard(),
		currentPlayer: Black,
	}
}

// FromBoard starts a game from an arbitrary position with an empty history.
func FromBoard(board Board, current Player) *GameState {
	return &GameState{
		board:         board,
		currentPlayer: current,
	}
}

// Clone returns an independent copy of the game.
func (gs *GameState) Clone() *GameState {
	clone := *gs
	return &clone
}

func (gs *GameState) Board() Board {
	return gs.board
}

func (gs *GameState) CurrentPlayer() Player {
	return gs.currentPlayer
}

// ConsecutivePasses returns the number of passes since the last placement.
func (gs *GameState) ConsecutivePasses() int {
	return gs.consecutivePasses
}

// MoveCount returns the number of recorded plies, passes included.
func (gs *GameState) MoveCount() int {
	return gs.historyLen
}

// History returns a copy of the recorded plies, oldest first.
func (gs *GameState) History() []HistoryEntry {
	history := make([]HistoryEntry, gs.historyLen)
	copy(history, gs.history[:gs.historyLen])
	return history
}

// HistoryAt returns the i-th recorded ply.
func (gs *GameState) HistoryAt(i int) (HistoryEntry, bool) {
	if i < 0 || i >= gs.historyLen {
		return HistoryEntry{}, false
	}
	return gs.history[i], true
}

// LastMove returns the most recent ply.
func (gs *GameState) LastMove() (HistoryEntry, bool) {
	return gs.HistoryAt(gs.historyLen - 1)
}

func (gs *GameState) LegalMoves() MoveList {
	return GenerateMoves(gs.board, gs.currentPlayer)
}

func (gs *GameState) LegalMovesBitboard() uint64 {
	return LegalMovesBitboard(gs.board, gs.currentPlayer)
}

// HasMoves reports whether the player to move has a legal move.
func (gs *GameState) HasMoves() bool {
	return HasMoves(gs.board, gs.currentPlayer)
}

func (gs *GameState) CountLegalMoves() int {
	return CountMoves(gs.board, gs.currentPlayer)
}

// Mobility returns the number of legal moves available to p.
func (gs *GameState) Mobility(p Player) int {
	return CountMoves(gs.board, p)
}

// IsLegal reports whether the player to move may place at pos.
func (gs *GameState) IsLegal(pos Position) bool {
	return IsLegalMove(gs.board, gs.currentPlayer, pos)
}

// IsGameOver reports whether both sides have passed in a row or the board is
// full.
func (gs *GameState) IsGameOver() bool {
	return gs.consecutivePasses >= 2 || gs.board.IsFull()
}

// Result returns the outcome once the game is over.
func (gs *GameState) Result() (GameResult, bool) {
	if !gs.IsGameOver() {
		return GameResult{}, false
	}
	return resultFor(gs.board), true
}

// Counts returns the disc counts as (black, white).
func (gs *GameState) Counts() (int, int) {
	return gs.board.Count(Black), gs.board.Count(White)
}

func (gs *GameState) EmptyCount() int {
	return gs.board.EmptyCount()
}

func (gs *GameState) record(e HistoryEntry) {
	if gs.historyLen < MaxHistory {
		gs.history[gs.historyLen] = e
		gs.historyLen++
	}
}

// MakeMove places a disc for the player to move. It reports false and leaves
// the game untouched if pos is occupied or captures nothing. Forced passes and
// game termination are left to the caller.
func (gs *GameState) MakeMove(pos Position) (Move, bool) {
	flipped := CalculateFlips(gs.board, gs.currentPlayer, pos)
	if flipped == 0 {
		return Move{}, false
	}
	m := Move{Pos: pos, Flipped: flipped}
	gs.board = Apply(gs.board, gs.currentPlayer, m)
	gs.record(HistoryEntry{Pos: pos, Flipped: flipped, Player: gs.currentPlayer})
	gs.consecutivePasses = 0
	gs.currentPlayer = gs.currentPlayer.Opponent()
	return m, true
}

// Pass hands the turn over. Passing is only allowed without a legal move.
func (gs *GameState) Pass() bool {
	if gs.HasMoves() {
		return false
	}
	gs.record(HistoryEntry{Pos: PassPosition, Player: gs.currentPlayer})
	gs.consecutivePasses++
	gs.currentPlayer = gs.currentPlayer.Opponent()
	return true
}

// Undo reverts the most recent ply and returns it.
func (gs *GameState) Undo() (HistoryEntry, bool) {
	if gs.historyLen == 0 {
		return HistoryEntry{}, false
	}
	gs.historyLen--
	e := gs.history[gs.historyLen]

	if !e.IsPass() {
		gs.board.Remove(e.Player, e.Pos)
		gs.board.Flip(e.Player, e.Flipped)
	}
	gs.consecutivePasses = gs.trailingPasses()
	gs.currentPlayer = e.Player
	return e, true
}

// trailingPasses counts the passes at the end of the history, at most two.
func (gs *GameState) trailingPasses() int {
	n := 0
	for i := gs.historyLen - 1; i >= 0 && n < 2 && gs.history[i].IsPass(); i-- {
		n++
	}
	return n
}

// CloneAtMove replays the first k recorded plies from the standard opening.
func (gs *GameState) CloneAtMove(k int) *GameState {
	k = max(0, min(k, gs.historyLen))
	replay := NewGameState()
	for _, e := range gs.history[:k] {
		if e.IsPass() {
			replay.Pass()
		} else {
			replay.MakeMove(e.Pos)
		}
	}
	return replay
}

// BoardAtMove returns the board after the first k plies.
func (gs *GameState) BoardAtMove(k int) Board {
	return gs.CloneAtMove(k).board
}
