// Package storage provides the persistence layer for the game server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"
)

// WireEvent mirrors the wire-log record structure for persistence.
// The domain packages do NOT import this; the adapter in cmd translates.
type WireEvent struct {
	ID         string                 `json:"id" db:"id"`
	GameID     string                 `json:"game_id" db:"game_id"`
	Timestamp  time.Time              `json:"timestamp" db:"timestamp"`
	RecordType string                 `json:"record_type" db:"record_type"`
	Actor      string                 `json:"actor" db:"actor"`
	Turn       int                    `json:"turn" db:"turn"`
	Payload    map[string]interface{} `json:"payload" db:"payload"`
}

// EventRepository defines the interface for wire-log persistence.
type EventRepository interface {
	// Append adds a new record to the immutable ledger.
	Append(ctx context.Context, event WireEvent) error

	// GetByGameID retrieves all records for a specific game (for replay).
	GetByGameID(ctx context.Context, gameID string) ([]WireEvent, error)

	// GetByTurn retrieves all records from a specific turn.
	GetByTurn(ctx context.Context, gameID string, turn int) ([]WireEvent, error)

	// GetByRecordType retrieves all records of a specific type.
	GetByRecordType(ctx context.Context, gameID string, recordType string) ([]WireEvent, error)
}

// StandingsRow is the persisted polling snapshot for one state, kept
// current so viewers can be served without replaying the wire log.
type StandingsRow struct {
	GameID            string    `json:"game_id" db:"game_id"`
	Abbreviation      string    `json:"abbreviation" db:"abbreviation"`
	Name              string    `json:"name" db:"name"`
	ElectoralVotes    int       `json:"electoral_votes" db:"electoral_votes"`
	IncumbentSupport  float64   `json:"incumbent_support" db:"incumbent_support"`
	ChallengerSupport float64   `json:"challenger_support" db:"challenger_support"`
	Lean              string    `json:"lean" db:"lean"`
	Region            string    `json:"region" db:"region"`
	Turn              int       `json:"turn" db:"turn"`
	LastUpdated       time.Time `json:"last_updated" db:"last_updated"`
}

// StandingsRepository defines the interface for per-state standings snapshots.
type StandingsRepository interface {
	// Upsert updates or inserts one state's standings.
	Upsert(ctx context.Context, row StandingsRow) error

	// GetByGameID retrieves all standings rows for a game.
	GetByGameID(ctx context.Context, gameID string) ([]StandingsRow, error)
}
