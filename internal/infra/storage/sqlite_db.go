package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite initializes the local SQLite database and creates the
// schemas for the wire-event ledger and the per-state standings table.
func InitSQLite(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id TEXT PRIMARY KEY,
			incumbent_name TEXT NOT NULL,
			challenger_name TEXT NOT NULL,
			current_turn INTEGER NOT NULL DEFAULT 1,
			game_over BOOLEAN NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			last_updated DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS wire_events (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			record_type TEXT NOT NULL,
			actor TEXT NOT NULL,
			turn INTEGER NOT NULL,
			payload TEXT NOT NULL,
			FOREIGN KEY (game_id) REFERENCES games(game_id)
		);`,
		`CREATE TABLE IF NOT EXISTS standings (
			game_id TEXT NOT NULL,
			abbreviation TEXT NOT NULL,
			name TEXT NOT NULL,
			electoral_votes INTEGER NOT NULL,
			incumbent_support REAL NOT NULL,
			challenger_support REAL NOT NULL,
			lean TEXT NOT NULL,
			region TEXT NOT NULL,
			turn INTEGER NOT NULL,
			last_updated DATETIME NOT NULL,
			PRIMARY KEY (game_id, abbreviation),
			FOREIGN KEY (game_id) REFERENCES games(game_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_wire_events_game_id ON wire_events(game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_wire_events_turn ON wire_events(game_id, turn);`,
		`CREATE INDEX IF NOT EXISTS idx_wire_events_type ON wire_events(game_id, record_type);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
