package campaign

import "fmt"

// ActionType identifies one of the seven campaign actions.
type ActionType string

const (
	ActionFundraiser         ActionType = "FUNDRAISER"
	ActionRally              ActionType = "RALLY"
	ActionAdCampaign         ActionType = "AD_CAMPAIGN"
	ActionGrassroots         ActionType = "GRASSROOTS"
	ActionDebatePrep         ActionType = "DEBATE_PREP"
	ActionOppositionResearch ActionType = "OPPOSITION_RESEARCH"
	ActionMediaBlitz         ActionType = "MEDIA_BLITZ"
)

// ActionOrder is the canonical definition order of the catalog.
// Weighted AI draws and catalog listings walk this order; keep it stable.
var ActionOrder = []ActionType{
	ActionFundraiser,
	ActionRally,
	ActionAdCampaign,
	ActionGrassroots,
	ActionDebatePrep,
	ActionOppositionResearch,
	ActionMediaBlitz,
}

// ActionDefinition is a static catalog entry: what an action costs and does.
type ActionDefinition struct {
	ActionType        ActionType `json:"action_type"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Cost              int        `json:"cost"`                // millions
	BaseSupportChange float64    `json:"base_support_change"` // sign indicates benefit/harm
	MomentumChange    int        `json:"momentum_change"`
	TargetStates      int        `json:"target_states"` // 0 = national effect
}

// DisplayCost formats the cost for presentation.
func (d ActionDefinition) DisplayCost() string {
	return fmt.Sprintf("$%dM", d.Cost)
}

var actionDefinitions = map[ActionType]ActionDefinition{
	ActionFundraiser: {
		ActionType:        ActionFundraiser,
		Name:              "Fundraiser",
		Description:       "Host a fundraising event to replenish campaign funds",
		Cost:              0,
		BaseSupportChange: 0.0,
		MomentumChange:    -5,
		TargetStates:      0,
	},
	ActionRally: {
		ActionType:        ActionRally,
		Name:              "Campaign Rally",
		Description:       "Hold a rally in a target state to boost support",
		Cost:              2,
		BaseSupportChange: 3.0,
		MomentumChange:    5,
		TargetStates:      1,
	},
	ActionAdCampaign: {
		ActionType:        ActionAdCampaign,
		Name:              "Ad Campaign",
		Description:       "Run targeted TV and digital ads in multiple states",
		Cost:              4,
		BaseSupportChange: 2.0,
		MomentumChange:    3,
		TargetStates:      3,
	},
	ActionGrassroots: {
		ActionType:        ActionGrassroots,
		Name:              "Grassroots Organizing",
		Description:       "Deploy volunteers for door-to-door canvassing",
		Cost:              1,
		BaseSupportChange: 1.5,
		MomentumChange:    2,
		TargetStates:      2,
	},
	ActionDebatePrep: {
		ActionType:        ActionDebatePrep,
		Name:              "Debate Preparation",
		Description:       "Prepare for upcoming debates with policy briefings",
		Cost:              1,
		BaseSupportChange: 0.0,
		MomentumChange:    10,
		TargetStates:      0,
	},
	ActionOppositionResearch: {
		ActionType:        ActionOppositionResearch,
		Name:              "Opposition Research",
		Description:       "Investigate opponent's record for attack ads",
		Cost:              3,
		BaseSupportChange: -2.5, // hits the opponent
		MomentumChange:    0,
		TargetStates:      0,
	},
	ActionMediaBlitz: {
		ActionType:        ActionMediaBlitz,
		Name:              "Media Blitz",
		Description:       "Intensive media appearances across networks",
		Cost:              3,
		BaseSupportChange: 1.5,
		MomentumChange:    8,
		TargetStates:      0,
	},
}

// GetActionDefinition looks up the catalog entry for an action type.
func GetActionDefinition(actionType ActionType) ActionDefinition {
	return actionDefinitions[actionType]
}

// KnownAction reports whether the action type exists in the catalog.
func KnownAction(actionType ActionType) bool {
	_, ok := actionDefinitions[actionType]
	return ok
}

// AllActions returns the full catalog in definition order.
func AllActions() []ActionDefinition {
	out := make([]ActionDefinition, 0, len(ActionOrder))
	for _, at := range ActionOrder {
		out = append(out, actionDefinitions[at])
	}
	return out
}

// ActionResult is the transcript of one executed (or rejected) action.
type ActionResult struct {
	ActionType     ActionType         `json:"action_type"`
	Success        bool               `json:"success"`
	Message        string             `json:"message"`
	FundsSpent     int                `json:"funds_spent"`
	FundsRaised    int                `json:"funds_raised"`
	SupportChanges map[string]float64 `json:"support_changes"` // abbrev -> delta
	MomentumChange int                `json:"momentum_change"`
	AffectedStates []string           `json:"affected_states"`
}

// NetFundsChange returns raised minus spent.
func (r ActionResult) NetFundsChange() int {
	return r.FundsRaised - r.FundsSpent
}
