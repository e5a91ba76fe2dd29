package main

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
	"github.com/mcortes/CampaignManager2026/server/internal/engine"
	"github.com/mcortes/CampaignManager2026/server/internal/events"
	"github.com/mcortes/CampaignManager2026/server/internal/infra/storage"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/logger"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/metrics"
)

// wireHooks attaches the engine's observer callbacks. The hooks are the
// only bridge between the deterministic game core and the outside world:
// everything that happens in a turn becomes a wire record, a metric
// bump, or a standings row.
func wireHooks(eng *engine.GameEngine, wireLog *events.Log, standingsRepo *storage.SQLiteStandingsRepository, db *sql.DB, gameID string, appLogger *logger.Logger) {
	eng.OnTurnStart = func(gs game.GameState, turn int) {
		metrics.Get().RecordTurn()
		wireLog.Append(events.Record{
			ID:        events.NewRecordID(),
			Timestamp: time.Now(),
			Type:      events.RecordTurnStart,
			Actor:     gs.Incumbent.Name,
			Turn:      turn,
			Payload: map[string]interface{}{
				"turns_remaining": gs.TurnsRemaining(),
			},
		})
	}

	eng.OnEvent = func(gs game.GameState, ev game.GameEvent) {
		metrics.Get().RecordRandomEvent()
		wireLog.Append(events.Record{
			ID:        events.NewRecordID(),
			Timestamp: time.Now(),
			Type:      events.RecordRandomEvent,
			Actor:     "NEWS_CYCLE",
			Turn:      gs.CurrentTurn,
			Payload:   ev,
		})
		appLogger.Event("RANDOM_EVENT", "NEWS_CYCLE", ev.Title)
	}

	eng.OnAction = func(gs game.GameState, result campaign.ActionResult, isIncumbent bool) {
		metrics.Get().RecordAction(result.Success)
		actor := gs.Challenger.Name
		if isIncumbent {
			actor = gs.Incumbent.Name
		}
		wireLog.Append(events.Record{
			ID:        events.NewRecordID(),
			Timestamp: time.Now(),
			Type:      events.RecordActionExecuted,
			Actor:     actor,
			Turn:      gs.CurrentTurn,
			Payload:   result,
		})
	}

	eng.OnTurnEnd = func(gs game.GameState, turn int) {
		wireLog.Append(events.Record{
			ID:        events.NewRecordID(),
			Timestamp: time.Now(),
			Type:      events.RecordTurnEnd,
			Actor:     gs.Incumbent.Name,
			Turn:      turn,
			Payload: map[string]interface{}{
				"incumbent_funds":     gs.Incumbent.Funds,
				"challenger_funds":    gs.Challenger.Funds,
				"incumbent_momentum":  gs.Incumbent.Momentum,
				"challenger_momentum": gs.Challenger.Momentum,
			},
		})

		// Persist the board off the hot path; the next turn does not
		// need to wait on SQLite.
		go persistStandings(gs, standingsRepo, db, gameID, turn, appLogger)
	}

	eng.OnGameEnd = func(gs game.GameState, result engine.ElectionResult) {
		metrics.Get().RecordGameFinished()
		wireLog.Append(events.Record{
			ID:        events.NewRecordID(),
			Timestamp: time.Now(),
			Type:      events.RecordGameEnded,
			Actor:     result.Winner,
			Turn:      gs.CurrentTurn,
			Payload:   result,
		})
		headline := strconv.Itoa(result.IncumbentEVs) + "-" + strconv.Itoa(result.ChallengerEVs)
		if result.IsLandslide {
			headline += " LANDSLIDE"
		}
		appLogger.Event("GAME_ENDED", result.Winner, headline)

		go persistStandings(gs, standingsRepo, db, gameID, gs.CurrentTurn, appLogger)
	}
}

func persistStandings(gs game.GameState, standingsRepo *storage.SQLiteStandingsRepository, db *sql.DB, gameID string, turn int, appLogger *logger.Logger) {
	ctx := context.Background()
	for _, st := range gs.StatesInOrder() {
		row := storage.StandingsRow{
			GameID:            gameID,
			Abbreviation:      st.Abbreviation,
			Name:              st.Name,
			ElectoralVotes:    st.ElectoralVotes,
			IncumbentSupport:  st.IncumbentSupport,
			ChallengerSupport: st.ChallengerSupport,
			Lean:              string(st.Lean),
			Region:            st.Region,
			Turn:              turn,
		}
		if err := standingsRepo.Upsert(ctx, row); err != nil {
			appLogger.Error("Failed to persist standings for " + st.Abbreviation + ": " + err.Error())
			return
		}
	}
	if err := storage.UpsertGame(ctx, db, gameID, gs.Incumbent.Name, gs.Challenger.Name, gs.CurrentTurn, gs.GameOver, gs.Winner); err != nil {
		appLogger.Error("Failed to persist game row: " + err.Error())
	}
	appLogger.Info("Standings persisted for turn " + strconv.Itoa(turn))
}
