// Package main is the entry point for the Campaign Manager 2026 game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcortes/CampaignManager2026/server/internal/ai"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/engine"
	"github.com/mcortes/CampaignManager2026/server/internal/events"
	"github.com/mcortes/CampaignManager2026/server/internal/infra/storage"
	"github.com/mcortes/CampaignManager2026/server/internal/network"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/config"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/logger"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/metrics"
	"github.com/mcortes/CampaignManager2026/server/internal/random"
)

// SQLitePersisterAdapter translates wire records to storage events.
type SQLitePersisterAdapter struct {
	repo   *storage.SQLiteEventRepository
	gameID string
}

func (a *SQLitePersisterAdapter) Append(record events.Record) error {
	payloadBytes, _ := json.Marshal(record.Payload)
	var payloadMap map[string]interface{}
	json.Unmarshal(payloadBytes, &payloadMap)

	wireEvent := storage.WireEvent{
		ID:         record.ID,
		GameID:     a.gameID,
		Timestamp:  record.Timestamp,
		RecordType: string(record.Type),
		Actor:      record.Actor,
		Turn:       record.Turn,
		Payload:    payloadMap,
	}
	err := a.repo.Append(context.Background(), wireEvent)
	metrics.Get().RecordWireWrite(err)
	return err
}

func main() {
	log.Println("[CAMPAIGN-SERVER] Initializing 'Campaign Manager 2026' Authoritative Server...")

	appLogger := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Failed to load configuration: " + err.Error())
		os.Exit(1)
	}

	appLogger.Info("Initializing SQLite database '" + cfg.DBPath + "'...")
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	eventRepo := storage.NewSQLiteEventRepository(db)
	standingsRepo := storage.NewSQLiteStandingsRepository(db)
	recordPersister := &SQLitePersisterAdapter{repo: eventRepo, gameID: cfg.GameID}

	appLogger.Info("Bootstrapping Wire Log...")
	wireLog := events.NewLog(recordPersister)

	appLogger.Info("Bootstrapping Game Engine...")
	gameEngine := engine.NewGameEngine()
	aiOpponent := ai.NewOpponent()

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			appLogger.Error("Failed to draw a random seed: " + err.Error())
			os.Exit(1)
		}
	}
	gameEngine.Seed(seed)
	aiOpponent.Seed(seed)
	appLogger.Info("Game seed: " + strconv.FormatInt(seed, 10))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The engine owns a single mutable GameState; every HTTP handler
	// serializes through this mutex.
	var mu sync.Mutex

	// Observer hooks feed the wire log, metrics and standings table.
	wireHooks(gameEngine, wireLog, standingsRepo, db, cfg.GameID, appLogger)

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(appLogger)
	go hub.Run(ctx)
	hub.StartRecordPoller(ctx, wireLog)

	archiveHandler := network.NewArchiveHandler(wireLog, appLogger)

	// Setup API Routes
	mux := http.NewServeMux()
	archiveHandler.RegisterRoutes(mux)

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	mux.HandleFunc("/api/metrics", metrics.Handler)

	mux.HandleFunc("/api/game/new", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		type requestParams struct {
			PlayerName     string `json:"player_name"`
			ChallengerName string `json:"challenger_name"`
		}
		var req requestParams
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if req.PlayerName == "" {
			jsonError(w, "Missing player_name", http.StatusBadRequest)
			return
		}

		mu.Lock()
		gs := gameEngine.NewGame(req.PlayerName, req.ChallengerName)
		mu.Unlock()

		metrics.Get().RecordGameStarted()
		wireLog.Append(events.Record{
			ID:        events.NewRecordID(),
			Timestamp: time.Now(),
			Type:      events.RecordGameStarted,
			Actor:     gs.Incumbent.Name,
			Turn:      gs.CurrentTurn,
			Payload: map[string]string{
				"incumbent":  gs.Incumbent.Name,
				"challenger": gs.Challenger.Name,
			},
		})
		_ = storage.UpsertGame(r.Context(), db, cfg.GameID, gs.Incumbent.Name, gs.Challenger.Name, gs.CurrentTurn, gs.GameOver, gs.Winner)

		appLogger.Event("GAME_STARTED", gs.Incumbent.Name, "vs "+gs.Challenger.Name)
		jsonResponse(w, gs)
	})

	mux.HandleFunc("/api/game/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		mu.Lock()
		state := gameEngine.State()
		mu.Unlock()
		if state == nil {
			jsonError(w, "No game in progress", http.StatusNotFound)
			return
		}
		jsonResponse(w, *state)
	})

	mux.HandleFunc("/api/turn/start", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		mu.Lock()
		gs, err := gameEngine.StartTurn()
		mu.Unlock()
		if err != nil {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonResponse(w, gs)
	})

	mux.HandleFunc("/api/action", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		type requestParams struct {
			ActionType   string   `json:"action_type"`
			TargetStates []string `json:"target_states"`
		}
		var req requestParams
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if !campaign.KnownAction(campaign.ActionType(req.ActionType)) {
			jsonError(w, "Unknown action type: "+req.ActionType, http.StatusBadRequest)
			return
		}

		mu.Lock()
		gs, result, err := gameEngine.ExecutePlayerAction(campaign.ActionType(req.ActionType), req.TargetStates)
		mu.Unlock()
		if err != nil {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}

		jsonResponse(w, map[string]interface{}{
			"result": result,
			"state":  gs,
		})
	})

	mux.HandleFunc("/api/ai-turn", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		mu.Lock()
		state := gameEngine.State()
		if state == nil {
			mu.Unlock()
			jsonError(w, "No game in progress", http.StatusNotFound)
			return
		}
		strategy := aiOpponent.DetermineStrategy(*state)
		actionType, targets := aiOpponent.ChooseAction(*state)
		gs, result, err := gameEngine.ExecuteAIAction(actionType, targets)
		mu.Unlock()
		if err != nil {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}

		appLogger.Event("AI_ACTION", gs.Challenger.Name, string(actionType)+" ["+string(strategy)+"]")
		jsonResponse(w, map[string]interface{}{
			"strategy":    strategy,
			"strategy_ai": aiOpponent.StrategyDescription(strategy),
			"assessment":  aiOpponent.EvaluatePosition(gs),
			"result":      result,
			"state":       gs,
		})
	})

	mux.HandleFunc("/api/turn/end", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		mu.Lock()
		gs, err := gameEngine.EndTurn()
		mu.Unlock()
		if err != nil {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonResponse(w, gs)
	})

	mux.HandleFunc("/api/game/result", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		mu.Lock()
		result, ok := gameEngine.ElectionResult()
		mu.Unlock()
		if !ok {
			jsonError(w, "Game is not over yet", http.StatusConflict)
			return
		}
		jsonResponse(w, result)
	})

	mux.HandleFunc("/api/analysis/evs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		mu.Lock()
		inc, chl, tied := gameEngine.CurrentEVs()
		mu.Unlock()
		jsonResponse(w, map[string]int{
			"incumbent":  inc,
			"challenger": chl,
			"tied":       tied,
		})
	})

	mux.HandleFunc("/api/analysis/battlegrounds", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		mu.Lock()
		analysis := gameEngine.BattlegroundAnalysis()
		mu.Unlock()
		if analysis == nil {
			jsonError(w, "No game in progress", http.StatusNotFound)
			return
		}
		jsonResponse(w, analysis)
	})

	mux.HandleFunc("/api/analysis/path", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		forIncumbent := r.URL.Query().Get("side") != "challenger"

		mu.Lock()
		path := gameEngine.PathToVictory(forIncumbent)
		eliminated := gameEngine.IsMathematicallyEliminated(forIncumbent)
		mu.Unlock()

		jsonResponse(w, map[string]interface{}{
			"path":       path,
			"eliminated": eliminated,
		})
	})

	mux.HandleFunc("/api/standings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rows, err := standingsRepo.GetByGameID(r.Context(), cfg.GameID)
		if err != nil {
			jsonError(w, "Failed to query standings: "+err.Error(), http.StatusInternalServerError)
			return
		}
		jsonResponse(w, rows)
	})

	go func() {
		log.Println("[CAMPAIGN-SERVER] HTTP API & WS Server listening on " + cfg.Addr)
		if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[CAMPAIGN-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[CAMPAIGN-SERVER] Shutting down...")
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for the web client
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection")
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}

func jsonResponse(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
