// Package ai implements the challenger's decision policy: pick a
// strategy from the electoral position, then a weighted random action,
// then targets. It reads GameState and never writes it; the engine's
// ActionProcessor resolves whatever this package decides.
package ai

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
)

// Strategy is the AI's current posture.
type Strategy string

const (
	StrategyAggressive  Strategy = "AGGRESSIVE"  // losing badly - attack
	StrategyDefensive   Strategy = "DEFENSIVE"   // winning - protect the lead
	StrategyBalanced    Strategy = "BALANCED"    // close race - mix approaches
	StrategyFundraising Strategy = "FUNDRAISING" // low on funds - money first
)

// Strategy selection thresholds.
const (
	LosingThreshold   = 30 // EVs behind to trigger aggressive
	WinningThreshold  = 30 // EVs ahead to trigger defensive
	LowFundsThreshold = 2  // millions, below this fundraising overrides all
)

// Action weights per strategy. Each table sums to 1.0 and is walked in
// campaign.ActionOrder during the cumulative draw; both facts matter
// for behavioral parity, do not reorder or re-derive.
var (
	aggressiveWeights = map[campaign.ActionType]float64{
		campaign.ActionFundraiser:         0.05,
		campaign.ActionRally:              0.15,
		campaign.ActionAdCampaign:         0.25,
		campaign.ActionGrassroots:         0.05,
		campaign.ActionDebatePrep:         0.05,
		campaign.ActionOppositionResearch: 0.30,
		campaign.ActionMediaBlitz:         0.15,
	}

	defensiveWeights = map[campaign.ActionType]float64{
		campaign.ActionFundraiser:         0.10,
		campaign.ActionRally:              0.20,
		campaign.ActionAdCampaign:         0.15,
		campaign.ActionGrassroots:         0.25,
		campaign.ActionDebatePrep:         0.20,
		campaign.ActionOppositionResearch: 0.05,
		campaign.ActionMediaBlitz:         0.05,
	}

	balancedWeights = map[campaign.ActionType]float64{
		campaign.ActionFundraiser:         0.10,
		campaign.ActionRally:              0.20,
		campaign.ActionAdCampaign:         0.20,
		campaign.ActionGrassroots:         0.15,
		campaign.ActionDebatePrep:         0.10,
		campaign.ActionOppositionResearch: 0.10,
		campaign.ActionMediaBlitz:         0.15,
	}

	fundraisingWeights = map[campaign.ActionType]float64{
		campaign.ActionFundraiser:         0.70,
		campaign.ActionRally:              0.05,
		campaign.ActionAdCampaign:         0.05,
		campaign.ActionGrassroots:         0.10,
		campaign.ActionDebatePrep:         0.05,
		campaign.ActionOppositionResearch: 0.0,
		campaign.ActionMediaBlitz:         0.05,
	}
)

// Opponent is the AI challenger.
type Opponent struct {
	rng *rand.Rand
}

// NewOpponent creates an AI with an unseeded stream. Call Seed for
// reproducible games.
func NewOpponent() *Opponent {
	return &Opponent{rng: rand.New(rand.NewSource(1))}
}

// Seed resets the AI's random stream for reproducibility.
func (o *Opponent) Seed(seed int64) {
	o.rng = rand.New(rand.NewSource(seed))
}

// DetermineStrategy picks the posture for the current position. Low
// funds override everything; otherwise the EV gap decides.
func (o *Opponent) DetermineStrategy(gs game.GameState) Strategy {
	if gs.Challenger.Funds < LowFundsThreshold {
		return StrategyFundraising
	}

	evDiff := gs.ChallengerElectoralVotes() - gs.IncumbentElectoralVotes()
	switch {
	case evDiff <= -LosingThreshold:
		return StrategyAggressive
	case evDiff >= WinningThreshold:
		return StrategyDefensive
	}
	return StrategyBalanced
}

// ChooseAction selects the AI's next action and targets: filter the
// strategy's weight table to affordable actions, then draw one uniform
// value against the cumulative weights walked in definition order.
func (o *Opponent) ChooseAction(gs game.GameState) (campaign.ActionType, []string) {
	strategy := o.DetermineStrategy(gs)
	weights := weightsForStrategy(strategy)

	totalWeight := 0.0
	affordable := make(map[campaign.ActionType]bool, len(weights))
	for _, actionType := range campaign.ActionOrder {
		definition := campaign.GetActionDefinition(actionType)
		if gs.Challenger.CanAfford(definition.Cost) {
			affordable[actionType] = true
			totalWeight += weights[actionType]
		}
	}

	if len(affordable) == 0 || totalWeight == 0 {
		return campaign.ActionFundraiser, nil
	}

	roll := o.rng.Float64() * totalWeight
	cumulative := 0.0
	for _, actionType := range campaign.ActionOrder {
		if !affordable[actionType] {
			continue
		}
		cumulative += weights[actionType]
		if roll <= cumulative {
			return actionType, o.selectTargetStates(gs, actionType)
		}
	}

	return campaign.ActionFundraiser, nil
}

func weightsForStrategy(strategy Strategy) map[campaign.ActionType]float64 {
	switch strategy {
	case StrategyAggressive:
		return aggressiveWeights
	case StrategyDefensive:
		return defensiveWeights
	case StrategyFundraising:
		return fundraisingWeights
	}
	return balancedWeights
}

// selectTargetStates picks the closest races for a targeted action,
// ties broken by descending electoral votes.
func (o *Opponent) selectTargetStates(gs game.GameState, actionType campaign.ActionType) []string {
	definition := campaign.GetActionDefinition(actionType)
	if definition.TargetStates == 0 {
		return nil
	}

	order := append([]string(nil), gs.Order...)
	sort.SliceStable(order, func(i, j int) bool {
		si, sj := gs.States[order[i]], gs.States[order[j]]
		mi, mj := math.Abs(si.Margin()), math.Abs(sj.Margin())
		if mi != mj {
			return mi < mj
		}
		return si.ElectoralVotes > sj.ElectoralVotes
	})

	count := definition.TargetStates
	if count > len(order) {
		count = len(order)
	}
	return order[:count]
}

// StrategyDescription returns a narrative line for the current posture.
func (o *Opponent) StrategyDescription(strategy Strategy) string {
	switch strategy {
	case StrategyAggressive:
		return "Playing aggressively - focusing on attack ads and opposition research"
	case StrategyDefensive:
		return "Playing defensively - building grassroots support and preparing for debates"
	case StrategyFundraising:
		return "Focusing on fundraising - campaign coffers are low"
	}
	return "Taking a balanced approach - mixing offense and defense"
}

// EvaluatePosition returns the AI's read on its own standing.
func (o *Opponent) EvaluatePosition(gs game.GameState) string {
	incEVs := gs.IncumbentElectoralVotes()
	chlEVs := gs.ChallengerElectoralVotes()

	switch {
	case chlEVs >= game.VotesToWin:
		return "Victory is within reach!"
	case chlEVs >= incEVs+50:
		return "Commanding lead - maintain pressure"
	case chlEVs >= incEVs+20:
		return "Solid lead - stay focused"
	case chlEVs >= incEVs-20:
		return "Race is tight - every vote matters"
	case chlEVs >= incEVs-50:
		return "Trailing - need to change the narrative"
	}
	return "Significant deficit - time for bold moves"
}
