package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event WireEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO wire_events (id, game_id, timestamp, record_type, actor, turn, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.GameID, event.Timestamp, event.RecordType, event.Actor,
		event.Turn, string(payloadBytes),
	)
	if err != nil {
		return fmt.Errorf("failed to append wire event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]WireEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []WireEvent
	for rows.Next() {
		var e WireEvent
		var payloadStr string
		err := rows.Scan(
			&e.ID, &e.GameID, &e.Timestamp, &e.RecordType, &e.Actor,
			&e.Turn, &payloadStr,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) GetByGameID(ctx context.Context, gameID string) ([]WireEvent, error) {
	query := `SELECT id, game_id, timestamp, record_type, actor, turn, payload FROM wire_events WHERE game_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID)
}

func (r *SQLiteEventRepository) GetByTurn(ctx context.Context, gameID string, turn int) ([]WireEvent, error) {
	query := `SELECT id, game_id, timestamp, record_type, actor, turn, payload FROM wire_events WHERE game_id = ? AND turn = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID, turn)
}

func (r *SQLiteEventRepository) GetByRecordType(ctx context.Context, gameID string, recordType string) ([]WireEvent, error) {
	query := `SELECT id, game_id, timestamp, record_type, actor, turn, payload FROM wire_events WHERE game_id = ? AND record_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID, recordType)
}

// ---------------------------------------------------------
// SQLiteStandingsRepository
// ---------------------------------------------------------

type SQLiteStandingsRepository struct {
	db *sql.DB
}

func NewSQLiteStandingsRepository(db *sql.DB) *SQLiteStandingsRepository {
	return &SQLiteStandingsRepository{db: db}
}

func (r *SQLiteStandingsRepository) Upsert(ctx context.Context, row StandingsRow) error {
	query := `
		INSERT INTO standings (game_id, abbreviation, name, electoral_votes, incumbent_support, challenger_support, lean, region, turn, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id, abbreviation) DO UPDATE SET
			incumbent_support=excluded.incumbent_support,
			challenger_support=excluded.challenger_support,
			lean=excluded.lean,
			turn=excluded.turn,
			last_updated=excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		row.GameID, row.Abbreviation, row.Name, row.ElectoralVotes,
		row.IncumbentSupport, row.ChallengerSupport, row.Lean, row.Region,
		row.Turn, time.Now(),
	)
	return err
}

func (r *SQLiteStandingsRepository) GetByGameID(ctx context.Context, gameID string) ([]StandingsRow, error) {
	query := `SELECT game_id, abbreviation, name, electoral_votes, incumbent_support, challenger_support, lean, region, turn, last_updated FROM standings WHERE game_id = ? ORDER BY electoral_votes DESC`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StandingsRow
	for rows.Next() {
		var s StandingsRow
		err := rows.Scan(
			&s.GameID, &s.Abbreviation, &s.Name, &s.ElectoralVotes,
			&s.IncumbentSupport, &s.ChallengerSupport, &s.Lean, &s.Region,
			&s.Turn, &s.LastUpdated,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpsertGame records game-level metadata (turn counter, winner).
func UpsertGame(ctx context.Context, db *sql.DB, gameID, incumbentName, challengerName string, currentTurn int, gameOver bool, winner string) error {
	query := `
		INSERT INTO games (game_id, incumbent_name, challenger_name, current_turn, game_over, winner, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			current_turn=excluded.current_turn,
			game_over=excluded.game_over,
			winner=excluded.winner,
			last_updated=excluded.last_updated
	`
	_, err := db.ExecContext(ctx, query, gameID, incumbentName, challengerName, currentTurn, gameOver, winner, time.Now())
	return err
}
