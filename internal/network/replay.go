// Package network - replay.go
// Press archive endpoint - JSON export of campaign history.
//
// This is the post-game "press room" viewer. It lets spectators and
// analysts replay the immutable record of a running or finished race.
package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mcortes/CampaignManager2026/server/internal/events"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/logger"
)

// ArchiveHandler provides the press archive API.
type ArchiveHandler struct {
	wireLog *events.Log
	logger  *logger.Logger
}

// NewArchiveHandler creates a new press archive handler.
func NewArchiveHandler(wl *events.Log, log *logger.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		wireLog: wl,
		logger:  log,
	}
}

// ArchiveRecord is a wire record formatted for public viewing.
type ArchiveRecord struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	Turn      int         `json:"turn"`
	Type      string      `json:"type"`
	Actor     string      `json:"actor"`
	Summary   string      `json:"summary"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ArchiveResponse is the API response for the press archive.
type ArchiveResponse struct {
	GameID       string          `json:"game_id"`
	TotalRecords int             `json:"total_records"`
	FilteredBy   string          `json:"filtered_by,omitempty"`
	GeneratedAt  string          `json:"generated_at"`
	Records      []ArchiveRecord `json:"records"`
}

// HandleArchive returns the press archive for a game.
// GET /api/archive/replay?game_id=XXX&turn=N&type=RANDOM_EVENT&actor=YYY
func (ah *ArchiveHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ah.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		ah.jsonError(w, "Missing game_id", http.StatusBadRequest)
		return
	}

	// Optional filters
	turnStr := r.URL.Query().Get("turn")
	recordType := r.URL.Query().Get("type")
	actor := r.URL.Query().Get("actor")

	allRecords := ah.wireLog.Replay()

	var archive []ArchiveRecord
	filterDesc := ""

	for _, rec := range allRecords {
		if turnStr != "" {
			turn, _ := strconv.Atoi(turnStr)
			if rec.Turn != turn {
				continue
			}
			filterDesc = "Turn " + turnStr
		}

		if recordType != "" && string(rec.Type) != recordType {
			continue
		}

		if actor != "" && rec.Actor != actor {
			continue
		}

		archive = append(archive, ah.convertRecord(rec))
	}

	response := ArchiveResponse{
		GameID:       gameID,
		TotalRecords: len(archive),
		FilteredBy:   filterDesc,
		GeneratedAt:  time.Now().Format(time.RFC3339),
		Records:      archive,
	}

	ah.logger.Event("PRESS_ARCHIVE", "SPECTATOR", "GameID:"+gameID+" Records:"+strconv.Itoa(len(archive)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleRecordDetail returns a single wire record in full.
// GET /api/archive/record?record_id=XXX
func (ah *ArchiveHandler) HandleRecordDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ah.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	recordID := r.URL.Query().Get("record_id")
	if recordID == "" {
		ah.jsonError(w, "Missing record_id", http.StatusBadRequest)
		return
	}

	for _, rec := range ah.wireLog.Replay() {
		if rec.ID == recordID {
			detail := ah.convertRecord(rec)
			detail.Payload = rec.Payload

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(detail)
			return
		}
	}

	ah.jsonError(w, "Record not found", http.StatusNotFound)
}

// HandleStats returns aggregate statistics for the archive.
// GET /api/archive/stats?game_id=XXX
func (ah *ArchiveHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ah.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	allRecords := ah.wireLog.Replay()

	stats := map[string]int{
		"total_records":    len(allRecords),
		"turns_started":    0,
		"actions_executed": 0,
		"random_events":    0,
	}

	for _, rec := range allRecords {
		switch rec.Type {
		case events.RecordTurnStart:
			stats["turns_started"]++
		case events.RecordActionExecuted:
			stats["actions_executed"]++
		case events.RecordRandomEvent:
			stats["random_events"]++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"stats":        stats,
	})
}

// RegisterRoutes sets up the press archive API routes.
func (ah *ArchiveHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/archive/replay", ah.HandleArchive)
	mux.HandleFunc("/api/archive/record", ah.HandleRecordDetail)
	mux.HandleFunc("/api/archive/stats", ah.HandleStats)
}

// convertRecord transforms an internal record into the public format.
// The raw payload is omitted; use the detail endpoint for it.
func (ah *ArchiveHandler) convertRecord(rec events.Record) ArchiveRecord {
	return ArchiveRecord{
		ID:        rec.ID,
		Timestamp: rec.Timestamp.Format("15:04:05"),
		Turn:      rec.Turn,
		Type:      string(rec.Type),
		Actor:     rec.Actor,
		Summary:   ah.summarizeRecord(rec),
	}
}

// summarizeRecord creates a human-readable headline for a record.
func (ah *ArchiveHandler) summarizeRecord(rec events.Record) string {
	switch rec.Type {
	case events.RecordGameStarted:
		return "The race is on."
	case events.RecordTurnStart:
		return "A new week on the trail begins."
	case events.RecordTurnEnd:
		return "The week wraps up."
	case events.RecordActionExecuted:
		return rec.Actor + " made a campaign move."
	case events.RecordRandomEvent:
		return "Breaking news shakes the race."
	case events.RecordGameEnded:
		return "The votes are in."
	default:
		return "Something happened on the trail."
	}
}

// jsonError sends an error response.
func (ah *ArchiveHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
