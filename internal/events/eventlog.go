// Package events provides the wire log for the game server: an
// append-only record of everything that happened in a running election,
// fed by the engine's observer hooks and consumed by the spectator hub
// and the storage layer.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecordType defines the category of a wire record.
type RecordType string

const (
	RecordTurnStart      RecordType = "TURN_START"
	RecordTurnEnd        RecordType = "TURN_END"
	RecordRandomEvent    RecordType = "RANDOM_EVENT"
	RecordActionExecuted RecordType = "ACTION_EXECUTED"
	RecordGameStarted    RecordType = "GAME_STARTED"
	RecordGameEnded      RecordType = "GAME_ENDED"
)

// Record is an immutable entry in the wire log.
type Record struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      RecordType  `json:"type"`
	Actor     string      `json:"actor"` // campaign name or "NEWS_CYCLE"
	Turn      int         `json:"turn"`
	Payload   interface{} `json:"payload"` // record-specific data
}

// RecordPersister defines how a record is durably stored.
type RecordPersister interface {
	Append(record Record) error
}

// Log is the in-memory append-only wire log, optionally backed by a
// persister (SQLite in production).
type Log struct {
	mu        sync.RWMutex
	records   []Record
	persister RecordPersister
}

// NewLog creates a wire log with an optional persister.
func NewLog(persister RecordPersister) *Log {
	return &Log{
		records:   make([]Record, 0),
		persister: persister,
	}
}

// Append adds a record to the log. Records are immutable once appended.
func (l *Log) Append(record Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)

	if l.persister != nil {
		// Write through to persistent storage off the hot path.
		go func(r Record) {
			_ = l.persister.Append(r)
		}(record)
	}
}

// Replay returns the full history of records.
func (l *Log) Replay() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.records
}

// ByTurn returns all records for a given turn.
func (l *Log) ByTurn(turn int) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Record
	for _, r := range l.records {
		if r.Turn == turn {
			result = append(result, r)
		}
	}
	return result
}

// ByActor returns all records attributed to one actor.
func (l *Log) ByActor(actor string) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Record
	for _, r := range l.records {
		if r.Actor == actor {
			result = append(result, r)
		}
	}
	return result
}

// Len returns the number of records appended so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// NewRecordID creates a unique record identifier.
func NewRecordID() string {
	return uuid.NewString()
}
