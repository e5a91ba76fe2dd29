package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
)

// Fundraiser payout range, in millions (inclusive).
const (
	FundraiserMin = 3
	FundraiserMax = 6
)

// ActionProcessor resolves player and AI actions against the game state.
// It never mutates its input; every effect is expressed through the
// returned GameState and ActionResult.
type ActionProcessor struct {
	rng *rand.Rand
}

// NewActionProcessor creates a processor with an unseeded generator.
// Call Seed for reproducible games.
func NewActionProcessor() *ActionProcessor {
	return &ActionProcessor{rng: rand.New(rand.NewSource(1))}
}

// Seed resets the processor's random stream for reproducibility.
func (ap *ActionProcessor) Seed(seed int64) {
	ap.rng = rand.New(rand.NewSource(seed))
}

// ExecuteAction applies one action for the given side and returns the new
// state plus a transcript. An unaffordable action is the only failure
// path: it returns the state unchanged with Success=false.
func (ap *ActionProcessor) ExecuteAction(
	gs game.GameState,
	actionType campaign.ActionType,
	isIncumbent bool,
	targetStates []string,
) (game.GameState, campaign.ActionResult) {
	definition := campaign.GetActionDefinition(actionType)
	player := gs.Challenger
	if isIncumbent {
		player = gs.Incumbent
	}

	if !player.CanAfford(definition.Cost) {
		return gs, campaign.ActionResult{
			ActionType: actionType,
			Success:    false,
			Message: fmt.Sprintf("Cannot afford %s (need $%dM, have %s)",
				definition.Name, definition.Cost, player.FundsDisplay()),
			SupportChanges: map[string]float64{},
			AffectedStates: []string{},
		}
	}

	switch {
	case actionType == campaign.ActionFundraiser:
		return ap.executeFundraiser(gs, isIncumbent, definition)
	case actionType == campaign.ActionOppositionResearch:
		return ap.executeOppositionResearch(gs, isIncumbent, definition)
	case definition.TargetStates > 0:
		return ap.executeTargetedAction(gs, isIncumbent, definition, targetStates)
	}
	return ap.executeNationalAction(gs, isIncumbent, definition)
}

// executeFundraiser raises a uniform random amount and pays the momentum
// price. No support effect.
func (ap *ActionProcessor) executeFundraiser(
	gs game.GameState,
	isIncumbent bool,
	definition campaign.ActionDefinition,
) (game.GameState, campaign.ActionResult) {
	fundsRaised := FundraiserMin + ap.rng.Intn(FundraiserMax-FundraiserMin+1)

	if isIncumbent {
		gs = gs.WithIncumbent(gs.Incumbent.Update(fundsRaised, definition.MomentumChange))
	} else {
		gs = gs.WithChallenger(gs.Challenger.Update(fundsRaised, definition.MomentumChange))
	}

	return gs, campaign.ActionResult{
		ActionType:     campaign.ActionFundraiser,
		Success:        true,
		Message:        fmt.Sprintf("Fundraiser raised $%dM!", fundsRaised),
		FundsRaised:    fundsRaised,
		SupportChanges: map[string]float64{},
		MomentumChange: definition.MomentumChange,
		AffectedStates: []string{},
	}
}

// executeOppositionResearch hits the opponent's support in every state at
// full magnitude.
func (ap *ActionProcessor) executeOppositionResearch(
	gs game.GameState,
	isIncumbent bool,
	definition campaign.ActionDefinition,
) (game.GameState, campaign.ActionResult) {
	player := gs.Challenger
	if isIncumbent {
		player = gs.Incumbent
	}

	// Base change is negative; momentum scales the damage.
	effect := definition.BaseSupportChange * player.MomentumModifier()

	supportChanges := make(map[string]float64, len(gs.Order))
	table := gs.CopyStateTable()
	for _, abbrev := range gs.Order {
		state := table[abbrev]
		if isIncumbent {
			table[abbrev] = state.ApplySupportChange(0, effect)
		} else {
			table[abbrev] = state.ApplySupportChange(effect, 0)
		}
		supportChanges[abbrev] = effect
	}
	gs = gs.UpdateStates(table)

	if isIncumbent {
		gs = gs.WithIncumbent(player.Update(-definition.Cost, definition.MomentumChange))
	} else {
		gs = gs.WithChallenger(player.Update(-definition.Cost, definition.MomentumChange))
	}

	return gs, campaign.ActionResult{
		ActionType:     campaign.ActionOppositionResearch,
		Success:        true,
		Message:        fmt.Sprintf("Opposition research damages opponent by %.1f%% nationally", math.Abs(effect)),
		FundsSpent:     definition.Cost,
		SupportChanges: supportChanges,
		MomentumChange: definition.MomentumChange,
		AffectedStates: append([]string(nil), gs.Order...),
	}
}

// executeTargetedAction boosts the actor's own support in a bounded set
// of states at full magnitude. Missing targets are auto-selected from
// the closest races.
func (ap *ActionProcessor) executeTargetedAction(
	gs game.GameState,
	isIncumbent bool,
	definition campaign.ActionDefinition,
	targetStates []string,
) (game.GameState, campaign.ActionResult) {
	player := gs.Challenger
	if isIncumbent {
		player = gs.Incumbent
	}

	if len(targetStates) == 0 {
		targetStates = ap.selectTargetStates(gs, definition.TargetStates)
	}
	if len(targetStates) > definition.TargetStates {
		targetStates = targetStates[:definition.TargetStates]
	}

	effect := definition.BaseSupportChange * player.MomentumModifier()

	supportChanges := make(map[string]float64, len(targetStates))
	table := gs.CopyStateTable()
	for _, abbrev := range targetStates {
		state, ok := table[abbrev]
		if !ok {
			continue
		}
		if isIncumbent {
			table[abbrev] = state.ApplySupportChange(effect, 0)
		} else {
			table[abbrev] = state.ApplySupportChange(0, effect)
		}
		supportChanges[abbrev] = effect
	}
	gs = gs.UpdateStates(table)

	if isIncumbent {
		gs = gs.WithIncumbent(player.Update(-definition.Cost, definition.MomentumChange))
	} else {
		gs = gs.WithChallenger(player.Update(-definition.Cost, definition.MomentumChange))
	}

	return gs, campaign.ActionResult{
		ActionType: definition.ActionType,
		Success:    true,
		Message: fmt.Sprintf("%s boosted support by %.1f%% in %s",
			definition.Name, effect, strings.Join(targetStates, ", ")),
		FundsSpent:     definition.Cost,
		SupportChanges: supportChanges,
		MomentumChange: definition.MomentumChange,
		AffectedStates: targetStates,
	}
}

// executeNationalAction boosts the actor's own support in every state at
// half the per-state magnitude.
func (ap *ActionProcessor) executeNationalAction(
	gs game.GameState,
	isIncumbent bool,
	definition campaign.ActionDefinition,
) (game.GameState, campaign.ActionResult) {
	player := gs.Challenger
	if isIncumbent {
		player = gs.Incumbent
	}

	effect := definition.BaseSupportChange * player.MomentumModifier() * 0.5

	supportChanges := make(map[string]float64, len(gs.Order))
	table := gs.CopyStateTable()
	for _, abbrev := range gs.Order {
		state := table[abbrev]
		if isIncumbent {
			table[abbrev] = state.ApplySupportChange(effect, 0)
		} else {
			table[abbrev] = state.ApplySupportChange(0, effect)
		}
		supportChanges[abbrev] = effect
	}
	gs = gs.UpdateStates(table)

	if isIncumbent {
		gs = gs.WithIncumbent(player.Update(-definition.Cost, definition.MomentumChange))
	} else {
		gs = gs.WithChallenger(player.Update(-definition.Cost, definition.MomentumChange))
	}

	return gs, campaign.ActionResult{
		ActionType:     definition.ActionType,
		Success:        true,
		Message:        fmt.Sprintf("%s boosted national support by %.1f%%", definition.Name, effect),
		FundsSpent:     definition.Cost,
		SupportChanges: supportChanges,
		MomentumChange: definition.MomentumChange,
		AffectedStates: append([]string(nil), gs.Order...),
	}
}

// selectTargetStates picks the count closest races, ties broken by
// canonical order.
func (ap *ActionProcessor) selectTargetStates(gs game.GameState, count int) []string {
	order := append([]string(nil), gs.Order...)
	sort.SliceStable(order, func(i, j int) bool {
		return math.Abs(gs.States[order[i]].Margin()) < math.Abs(gs.States[order[j]].Margin())
	})
	if count > len(order) {
		count = len(order)
	}
	return order[:count]
}

// AffordableActions lists the catalog entries the player can pay for,
// in definition order.
func (ap *ActionProcessor) AffordableActions(player campaign.Player) []campaign.ActionDefinition {
	var out []campaign.ActionDefinition
	for _, def := range campaign.AllActions() {
		if player.CanAfford(def.Cost) {
			out = append(out, def)
		}
	}
	return out
}
