package storage

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"othello/export"
	"othello/game"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Store keeps the saved game, settings, statistics and finished games in
// SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database and its schema. ":memory:" gives a
// private in-memory database.
func Open(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// One connection: an in-memory database lives and dies with it
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.InitDB(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	return s.write(func(tx *sql.Tx) error {
		if _, err := tx.Exec(Schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// write runs fn in a transaction
func (s *Store) write(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("storage: failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Warn().Err(err).Msg("storage: write failed")
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("storage: failed to commit")
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Store) putBlob(name string, data []byte) error {
	return s.write(func(tx *sql.Tx) error {
		query := `INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
		if _, err := tx.Exec(query, name, data, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
		return nil
	})
}

// getBlob returns sql.ErrNoRows when name was never stored.
func (s *Store) getBlob(name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blobs WHERE name = ?`, name).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return data, nil
}

func (s *Store) deleteBlob(name string) error {
	return s.write(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM blobs WHERE name = ?`, name); err != nil {
			return fmt.Errorf("failed to delete %s: %w", name, err)
		}
		return nil
	})
}

// SaveGame replaces the single saved game slot.
func (s *Store) SaveGame(sg SavedGame) error {
	var buf bytes.Buffer
	if err := EncodeGame(&buf, sg); err != nil {
		return err
	}
	return s.putBlob(blobSavedGame, buf.Bytes())
}

func (s *Store) LoadGame() (SavedGame, error) {
	data, err := s.getBlob(blobSavedGame)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedGame{}, ErrNoSavedGame
	}
	if err != nil {
		return SavedGame{}, err
	}
	return DecodeGame(bytes.NewReader(data))
}

func (s *Store) HasSavedGame() (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM blobs WHERE name = ?`, blobSavedGame).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check saved game: %w", err)
	}
	return n > 0, nil
}

func (s *Store) DeleteSavedGame() error {
	return s.deleteBlob(blobSavedGame)
}

func (s *Store) SaveSettings(settings Settings) error {
	data, _ := settings.MarshalBinary()
	return s.putBlob(blobSettings, data)
}

// LoadSettings returns the defaults when nothing was saved yet, and together
// with the error when the stored bytes are unreadable.
func (s *Store) LoadSettings() (Settings, error) {
	settings := DefaultSettings()
	data, err := s.getBlob(blobSettings)
	if errors.Is(err, sql.ErrNoRows) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	if err := settings.UnmarshalBinary(data); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

func (s *Store) SaveStatistics(stats Statistics) error {
	data, _ := stats.MarshalBinary()
	return s.putBlob(blobStatistics, data)
}

// LoadStatistics returns zero counts when nothing was saved yet.
func (s *Store) LoadStatistics() (Statistics, error) {
	var stats Statistics
	data, err := s.getBlob(blobStatistics)
	if errors.Is(err, sql.ErrNoRows) {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	if err := stats.UnmarshalBinary(data); err != nil {
		return Statistics{}, err
	}
	return stats, nil
}

// NewGameRecord describes a finished game for ArchiveGame.
func NewGameRecord(state *game.GameState, mode Mode, playerColor game.Player) GameRecord {
	black, white := state.Counts()
	rec := GameRecord{
		Mode:        mode,
		PlayerColor: playerColor,
		Moves:       export.FormatCompact(state),
		BlackDiscs:  black,
		WhiteDiscs:  white,
		FinishedAt:  time.Now().UTC(),
	}
	if result, ok := state.Result(); ok {
		rec.Winner = result.WinnerName()
	}
	return rec
}

// ArchiveGame stores a finished game and returns its ID, generating one when
// rec has none.
func (s *Store) ArchiveGame(rec GameRecord) (string, error) {
	if rec.GameID == "" {
		rec.GameID = uuid.NewString()
	}
	err := s.write(func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, mode, player_color, moves, black_discs, white_discs, winner, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			rec.GameID, int(rec.Mode), int(rec.PlayerColor), rec.Moves,
			rec.BlackDiscs, rec.WhiteDiscs, rec.Winner, rec.FinishedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to archive game: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.GameID, nil
}

// RecentGames returns up to limit finished games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	rows, err := s.db.Query(`SELECT game_id, mode, player_color, moves, black_discs, white_discs, winner, finished_at
		FROM games ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var (
			rec         GameRecord
			mode, color int
		)
		if err := rows.Scan(&rec.GameID, &mode, &color, &rec.Moves, &rec.BlackDiscs, &rec.WhiteDiscs, &rec.Winner, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		rec.Mode = modeFromByte(byte(mode))
		rec.PlayerColor = game.Player(color)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}
	return records, nil
}
