package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var db *sql.DB

var (
	historyEncoder, _ = zstd.NewWriter(nil)
	historyDecoder, _ = zstd.NewReader(nil)
)

// InitDB opens (or creates) the SQLite archive of finished games. Move
// histories are stored as zstd-compressed JSON blobs.
func InitDB(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	var err error
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		started_at DATETIME,
		ended_at DATETIME,
		winner INTEGER,
		status TEXT,
		move_count INTEGER,
		history BLOB
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("create games table: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("game archive initialized")
	return nil
}

func CloseDB() {
	if db != nil {
		db.Close()
		db = nil
	}
}

// SaveGame archives a finished game. A nil db (archive disabled) is not an
// error; the decision service works without persistence.
func SaveGame(game *Game) error {
	if db == nil {
		return nil
	}
	if !game.Finished() {
		return fmt.Errorf("game %s is still running", game.ID)
	}
	history, err := encodeHistory(game.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	_, err = db.Exec(
		`INSERT OR REPLACE INTO games (id, started_at, ended_at, winner, status, move_count, history)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		game.ID, game.StartedAt, game.EndedAt, int(game.Winner), game.Status.String(), len(game.History), history,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	log.Info().
		Str("game_id", game.ID).
		Str("status", game.Status.String()).
		Int("moves", len(game.History)).
		Msg("game archived")
	return nil
}

type GameRecord struct {
	ID        string         `json:"id"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
	Winner    int            `json:"winner"`
	Status    string         `json:"status"`
	MoveCount int            `json:"move_count"`
	History   []HistoryEntry `json:"history,omitempty"`
}

func ListGames(limit int, withHistory bool) ([]GameRecord, error) {
	if db == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT id, started_at, ended_at, winner, status, move_count, history
		 FROM games ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	records := make([]GameRecord, 0, limit)
	for rows.Next() {
		var rec GameRecord
		var history []byte
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.EndedAt, &rec.Winner, &rec.Status, &rec.MoveCount, &history); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		if withHistory {
			entries, err := decodeHistory(history)
			if err != nil {
				log.Warn().Err(err).Str("game_id", rec.ID).Msg("corrupt archived history")
			} else {
				rec.History = entries
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func encodeHistory(history []HistoryEntry) ([]byte, error) {
	raw, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}
	return historyEncoder.EncodeAll(raw, nil), nil
}

func decodeHistory(blob []byte) ([]HistoryEntry, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	raw, err := historyDecoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, err
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
