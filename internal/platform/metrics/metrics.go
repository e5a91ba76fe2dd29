// Package metrics provides observability for the game server.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers runtime counters for the server.
type Collector struct {
	// Game metrics
	GamesStarted    int64
	GamesFinished   int64
	TurnsPlayed     int64
	ActionsExecuted int64
	ActionsRejected int64
	RandomEvents    int64

	// Wire log metrics
	RecordsWritten    int64
	RecordWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime    time.Time
	lastTurnTime time.Time
	mu           sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordGameStarted counts a new game.
func (c *Collector) RecordGameStarted() {
	atomic.AddInt64(&c.GamesStarted, 1)
}

// RecordGameFinished counts a finalized game.
func (c *Collector) RecordGameFinished() {
	atomic.AddInt64(&c.GamesFinished, 1)
}

// RecordTurn counts a completed turn.
func (c *Collector) RecordTurn() {
	atomic.AddInt64(&c.TurnsPlayed, 1)

	c.mu.Lock()
	c.lastTurnTime = time.Now()
	c.mu.Unlock()
}

// RecordAction counts an executed action; rejected ones count separately.
func (c *Collector) RecordAction(success bool) {
	if success {
		atomic.AddInt64(&c.ActionsExecuted, 1)
	} else {
		atomic.AddInt64(&c.ActionsRejected, 1)
	}
}

// RecordRandomEvent counts a generated news event.
func (c *Collector) RecordRandomEvent() {
	atomic.AddInt64(&c.RandomEvents, 1)
}

// RecordWireWrite records a wire-log persistence attempt.
func (c *Collector) RecordWireWrite(err error) {
	atomic.AddInt64(&c.RecordsWritten, 1)
	if err != nil {
		atomic.AddInt64(&c.RecordWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage counts an outbound WebSocket message.
func (c *Collector) RecordWSMessage() {
	atomic.AddInt64(&c.WSMessagesOut, 1)
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	lastTurn := c.lastTurnTime
	c.mu.RUnlock()

	lastTurnStr := ""
	if !lastTurn.IsZero() {
		lastTurnStr = lastTurn.Format(time.RFC3339)
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"games": map[string]interface{}{
			"started":  atomic.LoadInt64(&c.GamesStarted),
			"finished": atomic.LoadInt64(&c.GamesFinished),
		},

		"turns": map[string]interface{}{
			"played":    atomic.LoadInt64(&c.TurnsPlayed),
			"last_turn": lastTurnStr,
		},

		"actions": map[string]interface{}{
			"executed": atomic.LoadInt64(&c.ActionsExecuted),
			"rejected": atomic.LoadInt64(&c.ActionsRejected),
		},

		"events": map[string]interface{}{
			"random_events":      atomic.LoadInt64(&c.RandomEvents),
			"records_written":    atomic.LoadInt64(&c.RecordsWritten),
			"record_write_errors": atomic.LoadInt64(&c.RecordWriteErrors),
		},

		"websocket": map[string]interface{}{
			"connections_active": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler serves the metrics snapshot as JSON.
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Get().Snapshot())
}
