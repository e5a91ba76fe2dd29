package engine

import (
	"errors"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/election"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
)

// Engine precondition errors. Unaffordable actions are NOT errors; they
// come back as ActionResult{Success: false} with the state unchanged.
var (
	ErrNoGame   = errors.New("engine: game not initialized, call NewGame first")
	ErrGameOver = errors.New("engine: game is already over")
)

// Observer hooks. All fire synchronously, in order, as fire-and-forget
// notifications to the presentation layer; the engine never reads
// anything back from them.
type (
	OnTurnStartFunc func(game.GameState, int)
	OnTurnEndFunc   func(game.GameState, int)
	OnEventFunc     func(game.GameState, game.GameEvent)
	OnActionFunc    func(game.GameState, campaign.ActionResult, bool)
	OnGameEndFunc   func(game.GameState, ElectionResult)
)

// GameEngine orchestrates the turn lifecycle: start-turn, optional
// random event, player action, AI action, end-turn, and finalization.
// It holds the single current GameState between calls; every transition
// is a pure value transformation on it.
type GameEngine struct {
	actions   *ActionProcessor
	events    *EventGenerator
	electoral *ElectoralCalculator

	state  *game.GameState
	result *ElectionResult

	OnTurnStart OnTurnStartFunc
	OnTurnEnd   OnTurnEndFunc
	OnEvent     OnEventFunc
	OnAction    OnActionFunc
	OnGameEnd   OnGameEndFunc
}

// NewGameEngine wires the three resolution components together.
func NewGameEngine() *GameEngine {
	return &GameEngine{
		actions:   NewActionProcessor(),
		events:    NewEventGenerator(),
		electoral: NewElectoralCalculator(),
	}
}

// Seed resets the action processor, event generator and electoral
// calculator, each with its own stream initialized from the same
// integer. A single seed reproduces an entire game's randomness.
func (e *GameEngine) Seed(seed int64) {
	e.actions.Seed(seed)
	e.events.Seed(seed)
	e.electoral.Seed(seed)
}

// State returns the current game state, or nil before NewGame.
func (e *GameEngine) State() *game.GameState {
	return e.state
}

// NewGame resets to turn 1 of 20 with fresh players and the shipped
// 14-state configuration.
func (e *GameEngine) NewGame(playerName, challengerName string) game.GameState {
	if challengerName == "" {
		challengerName = "The Challenger"
	}

	incumbent := campaign.NewPlayer(playerName, true, true)
	challenger := campaign.NewPlayer(challengerName, false, false)

	gs := game.New(incumbent, challenger, election.InitialStates())
	e.state = &gs
	e.result = nil
	return gs
}

// StartTurn begins a turn and possibly injects one random event.
func (e *GameEngine) StartTurn() (game.GameState, error) {
	if e.state == nil {
		return game.GameState{}, ErrNoGame
	}
	if e.state.GameOver {
		return *e.state, ErrGameOver
	}

	if e.OnTurnStart != nil {
		e.OnTurnStart(*e.state, e.state.CurrentTurn)
	}

	if event := e.events.MaybeGenerateEvent(*e.state); event != nil {
		gs := e.events.ApplyEvent(*e.state, *event)
		e.state = &gs
		if e.OnEvent != nil {
			e.OnEvent(gs, *event)
		}
	}

	return *e.state, nil
}

// ExecutePlayerAction runs the human player's (incumbent's) action.
func (e *GameEngine) ExecutePlayerAction(actionType campaign.ActionType, targetStates []string) (game.GameState, campaign.ActionResult, error) {
	return e.executeAction(actionType, true, targetStates)
}

// ExecuteAIAction runs the AI's (challenger's) action.
func (e *GameEngine) ExecuteAIAction(actionType campaign.ActionType, targetStates []string) (game.GameState, campaign.ActionResult, error) {
	return e.executeAction(actionType, false, targetStates)
}

func (e *GameEngine) executeAction(actionType campaign.ActionType, isIncumbent bool, targetStates []string) (game.GameState, campaign.ActionResult, error) {
	if e.state == nil {
		return game.GameState{}, campaign.ActionResult{}, ErrNoGame
	}

	gs, result := e.actions.ExecuteAction(*e.state, actionType, isIncumbent, targetStates)
	e.state = &gs

	if e.OnAction != nil {
		e.OnAction(gs, result, isIncumbent)
	}
	return gs, result, nil
}

// EndTurn advances the turn counter, finalizing instead once the turn
// limit is reached.
func (e *GameEngine) EndTurn() (game.GameState, error) {
	if e.state == nil {
		return game.GameState{}, ErrNoGame
	}
	if e.state.GameOver {
		return *e.state, ErrGameOver
	}

	if e.OnTurnEnd != nil {
		e.OnTurnEnd(*e.state, e.state.CurrentTurn)
	}

	if e.state.CurrentTurn >= e.state.MaxTurns {
		return e.EndGame()
	}

	gs := e.state.AdvanceTurn()
	e.state = &gs
	return gs, nil
}

// EndGame forces finalization: computes the election result once,
// caches it, and marks the game over. Recomputing would draw fresh
// coin flips for tied states, so the result of the first call stands
// and a finished game refuses to finalize again.
func (e *GameEngine) EndGame() (game.GameState, error) {
	if e.state == nil {
		return game.GameState{}, ErrNoGame
	}
	if e.state.GameOver {
		return *e.state, ErrGameOver
	}

	result := e.electoral.CalculateFinalResult(*e.state)
	e.result = &result

	gs := e.state.EndGame(result.Winner)
	e.state = &gs

	if e.OnGameEnd != nil {
		e.OnGameEnd(gs, result)
	}
	return gs, nil
}

// CurrentEVs returns the live (incumbent, challenger, tied) tally.
func (e *GameEngine) CurrentEVs() (int, int, int) {
	if e.state == nil {
		return 0, 0, 0
	}
	return e.electoral.CalculateCurrentEVs(*e.state)
}

// ElectionResult returns the finalized outcome; ok is false until the
// game has ended.
func (e *GameEngine) ElectionResult() (ElectionResult, bool) {
	if e.state == nil || !e.state.GameOver || e.result == nil {
		return ElectionResult{}, false
	}
	return *e.result, true
}

// AffordableActions lists what the given side can currently pay for.
func (e *GameEngine) AffordableActions(forIncumbent bool) []campaign.ActionDefinition {
	if e.state == nil {
		return nil
	}
	player := e.state.Challenger
	if forIncumbent {
		player = e.state.Incumbent
	}
	return e.actions.AffordableActions(player)
}

// IsGameOver reports whether a finished game exists.
func (e *GameEngine) IsGameOver() bool {
	return e.state != nil && e.state.GameOver
}

// TurnInfo returns (current turn, max turns, turns remaining).
func (e *GameEngine) TurnInfo() (int, int, int) {
	if e.state == nil {
		return 0, 0, 0
	}
	return e.state.CurrentTurn, e.state.MaxTurns, e.state.TurnsRemaining()
}

// PathToVictory exposes the calculator's flip ranking for the given side.
func (e *GameEngine) PathToVictory(forIncumbent bool) []string {
	if e.state == nil {
		return nil
	}
	return e.electoral.PathToVictory(*e.state, forIncumbent)
}

// IsMathematicallyEliminated exposes the calculator's elimination check.
func (e *GameEngine) IsMathematicallyEliminated(forIncumbent bool) bool {
	if e.state == nil {
		return false
	}
	return e.electoral.IsMathematicallyEliminated(*e.state, forIncumbent)
}

// BattlegroundAnalysis exposes the competitive-state summary.
func (e *GameEngine) BattlegroundAnalysis() map[string]BattlegroundStatus {
	if e.state == nil {
		return nil
	}
	return e.electoral.BattlegroundAnalysis(*e.state)
}
