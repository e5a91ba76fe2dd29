package events

import (
	"testing"
	"time"
)

func newRecord(recordType RecordType, actor string, turn int) Record {
	return Record{
		ID:        NewRecordID(),
		Timestamp: time.Now(),
		Type:      recordType,
		Actor:     actor,
		Turn:      turn,
	}
}

func TestAppendAndReplay(t *testing.T) {
	log := NewLog(nil)

	log.Append(newRecord(RecordGameStarted, "Incumbent", 1))
	log.Append(newRecord(RecordTurnStart, "Incumbent", 1))
	log.Append(newRecord(RecordTurnStart, "Incumbent", 2))

	history := log.Replay()
	if len(history) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(history))
	}
	if history[0].Type != RecordGameStarted {
		t.Errorf("Replay order broken: first record is %s", history[0].Type)
	}
	if log.Len() != 3 {
		t.Errorf("Expected Len 3, got %d", log.Len())
	}
}

func TestByTurn(t *testing.T) {
	log := NewLog(nil)
	log.Append(newRecord(RecordTurnStart, "Incumbent", 1))
	log.Append(newRecord(RecordActionExecuted, "Incumbent", 1))
	log.Append(newRecord(RecordTurnStart, "Incumbent", 2))

	turnOne := log.ByTurn(1)
	if len(turnOne) != 2 {
		t.Fatalf("Expected 2 records for turn 1, got %d", len(turnOne))
	}
	if len(log.ByTurn(99)) != 0 {
		t.Error("Expected no records for an unplayed turn")
	}
}

func TestByActor(t *testing.T) {
	log := NewLog(nil)
	log.Append(newRecord(RecordActionExecuted, "Incumbent", 1))
	log.Append(newRecord(RecordActionExecuted, "The Challenger", 1))
	log.Append(newRecord(RecordRandomEvent, "NEWS_CYCLE", 1))

	if len(log.ByActor("NEWS_CYCLE")) != 1 {
		t.Error("Expected 1 news cycle record")
	}
	if len(log.ByActor("The Challenger")) != 1 {
		t.Error("Expected 1 challenger record")
	}
}

// channelPersister captures write-through calls for inspection.
type channelPersister struct {
	received chan Record
}

func (p *channelPersister) Append(record Record) error {
	p.received <- record
	return nil
}

func TestPersisterWriteThrough(t *testing.T) {
	persister := &channelPersister{received: make(chan Record, 1)}
	log := NewLog(persister)

	record := newRecord(RecordGameEnded, "Incumbent", 20)
	log.Append(record)

	select {
	case got := <-persister.received:
		if got.ID != record.ID {
			t.Errorf("Persisted record ID %q does not match %q", got.ID, record.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Persister was never called")
	}
}

func TestRecordIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRecordID()
		if id == "" {
			t.Fatal("Empty record ID")
		}
		if seen[id] {
			t.Fatalf("Duplicate record ID %q", id)
		}
		seen[id] = true
	}
}
