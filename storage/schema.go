package storage

import (
	"othello/game"
	"time"
)

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID      string      `db:"game_id"`
	Mode        Mode        `db:"mode"`
	PlayerColor game.Player `db:"player_color"`
	Moves       string      `db:"moves"` // compact move list
	BlackDiscs  int         `db:"black_discs"`
	WhiteDiscs  int         `db:"white_discs"`
	Winner      string      `db:"winner"` // "black", "white" or "draw"
	FinishedAt  time.Time   `db:"finished_at"`
}

// Blob names in the blobs table
const (
	blobSavedGame  = "current"
	blobSettings   = "settings"
	blobStatistics = "statistics"
)

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS blobs (
	name TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	mode INTEGER NOT NULL CHECK(mode BETWEEN 0 AND 4),
	player_color INTEGER NOT NULL CHECK(player_color IN (0, 1)),
	moves TEXT NOT NULL,
	black_discs INTEGER NOT NULL,
	white_discs INTEGER NOT NULL,
	winner TEXT NOT NULL CHECK(winner IN ('black', 'white', 'draw')),
	finished_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games(finished_at);
`
