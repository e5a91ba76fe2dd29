package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestEventRepositoryRoundTrip(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "campaign_test.db"))
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	defer db.Close()

	repo := NewSQLiteEventRepository(db)
	ctx := context.Background()

	event := WireEvent{
		ID:         "rec-1",
		GameID:     "GAME_T",
		Timestamp:  time.Now(),
		RecordType: "ACTION_EXECUTED",
		Actor:      "Incumbent",
		Turn:       3,
		Payload:    map[string]interface{}{"action_type": "RALLY"},
	}
	if err := repo.Append(ctx, event); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := repo.Append(ctx, WireEvent{
		ID: "rec-2", GameID: "GAME_T", Timestamp: time.Now(),
		RecordType: "TURN_START", Actor: "Incumbent", Turn: 4,
		Payload: map[string]interface{}{},
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	all, err := repo.GetByGameID(ctx, "GAME_T")
	if err != nil {
		t.Fatalf("GetByGameID failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(all))
	}
	if all[0].Payload["action_type"] != "RALLY" {
		t.Errorf("Payload did not survive the round trip: %v", all[0].Payload)
	}

	turnThree, err := repo.GetByTurn(ctx, "GAME_T", 3)
	if err != nil {
		t.Fatalf("GetByTurn failed: %v", err)
	}
	if len(turnThree) != 1 || turnThree[0].ID != "rec-1" {
		t.Errorf("Turn filter returned %d events", len(turnThree))
	}

	byType, err := repo.GetByRecordType(ctx, "GAME_T", "TURN_START")
	if err != nil {
		t.Fatalf("GetByRecordType failed: %v", err)
	}
	if len(byType) != 1 || byType[0].ID != "rec-2" {
		t.Errorf("Type filter returned %d events", len(byType))
	}

	if other, _ := repo.GetByGameID(ctx, "OTHER_GAME"); len(other) != 0 {
		t.Error("Events leaked across game IDs")
	}
}

func TestStandingsUpsertReplacesRows(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "campaign_test.db"))
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	defer db.Close()

	repo := NewSQLiteStandingsRepository(db)
	ctx := context.Background()

	row := StandingsRow{
		GameID: "GAME_T", Abbreviation: "FL", Name: "Florida",
		ElectoralVotes: 30, IncumbentSupport: 48.0, ChallengerSupport: 48.0,
		Lean: "Tossup", Region: "South", Turn: 1,
	}
	if err := repo.Upsert(ctx, row); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	row.IncumbentSupport = 51.0
	row.Lean = "Tossup"
	row.Turn = 2
	if err := repo.Upsert(ctx, row); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	rows, err := repo.GetByGameID(ctx, "GAME_T")
	if err != nil {
		t.Fatalf("GetByGameID failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Upsert duplicated the row: got %d rows", len(rows))
	}
	if rows[0].IncumbentSupport != 51.0 || rows[0].Turn != 2 {
		t.Errorf("Upsert did not replace values: %.1f at turn %d", rows[0].IncumbentSupport, rows[0].Turn)
	}
}

func TestStandingsOrderedByElectoralVotes(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "campaign_test.db"))
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	defer db.Close()

	repo := NewSQLiteStandingsRepository(db)
	ctx := context.Background()

	for _, r := range []StandingsRow{
		{GameID: "G", Abbreviation: "WI", Name: "Wisconsin", ElectoralVotes: 10, Lean: "Tossup", Region: "Midwest", Turn: 1},
		{GameID: "G", Abbreviation: "CA", Name: "California", ElectoralVotes: 54, Lean: "Safe Inc", Region: "West", Turn: 1},
		{GameID: "G", Abbreviation: "FL", Name: "Florida", ElectoralVotes: 30, Lean: "Tossup", Region: "South", Turn: 1},
	} {
		if err := repo.Upsert(ctx, r); err != nil {
			t.Fatalf("Upsert %s failed: %v", r.Abbreviation, err)
		}
	}

	rows, err := repo.GetByGameID(ctx, "G")
	if err != nil {
		t.Fatalf("GetByGameID failed: %v", err)
	}
	if len(rows) != 3 || rows[0].Abbreviation != "CA" || rows[2].Abbreviation != "WI" {
		t.Errorf("Expected rows ordered by EVs descending, got %v", []string{rows[0].Abbreviation, rows[1].Abbreviation, rows[2].Abbreviation})
	}
}

func TestUpsertGameMetadata(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "campaign_test.db"))
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := UpsertGame(ctx, db, "G", "Incumbent", "Challenger", 1, false, ""); err != nil {
		t.Fatalf("UpsertGame failed: %v", err)
	}
	if err := UpsertGame(ctx, db, "G", "Incumbent", "Challenger", 20, true, "Incumbent"); err != nil {
		t.Fatalf("Second UpsertGame failed: %v", err)
	}

	var turn int
	var gameOver bool
	var winner string
	row := db.QueryRowContext(ctx, "SELECT current_turn, game_over, winner FROM games WHERE game_id = ?", "G")
	if err := row.Scan(&turn, &gameOver, &winner); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if turn != 20 || !gameOver || winner != "Incumbent" {
		t.Errorf("Game metadata not updated: turn=%d over=%v winner=%q", turn, gameOver, winner)
	}
}
