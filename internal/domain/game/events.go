package game

import "fmt"

// EventType categorizes the random events the news cycle can throw at a campaign.
type EventType string

const (
	EventScandal     EventType = "SCANDAL"
	EventEconomic    EventType = "ECONOMIC"
	EventEndorsement EventType = "ENDORSEMENT"
	EventGaffe       EventType = "GAFFE"
	EventCrisis      EventType = "CRISIS"
	EventViral       EventType = "VIRAL"
)

// EventTypeOrder is the canonical order for uniform category draws.
var EventTypeOrder = []EventType{
	EventScandal,
	EventEconomic,
	EventEndorsement,
	EventGaffe,
	EventCrisis,
	EventViral,
}

// GameEvent is a random event that hit the game. Immutable once created;
// appended to the GameState event log.
type GameEvent struct {
	EventType        EventType `json:"event_type"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	AffectsIncumbent bool      `json:"affects_incumbent"`
	SupportChange    float64   `json:"support_change"` // positive = good for the affected player
	MomentumChange   int       `json:"momentum_change"`
	AffectedStates   []string  `json:"affected_states"` // empty = national
	TurnOccurred     int       `json:"turn_occurred"`
}

// IsNational reports whether the event hits every state.
func (e GameEvent) IsNational() bool {
	return len(e.AffectedStates) == 0
}

// ImpactDescription summarizes who gains or loses from the event.
func (e GameEvent) ImpactDescription() string {
	target := "Challenger"
	if e.AffectsIncumbent {
		target = "Incumbent"
	}
	switch {
	case e.SupportChange > 0:
		return fmt.Sprintf("%s gains support", target)
	case e.SupportChange < 0:
		return fmt.Sprintf("%s loses support", target)
	}
	return fmt.Sprintf("Affects %s's momentum", target)
}

// EventTemplate is one (title, description) pair for random generation.
type EventTemplate struct {
	Title       string
	Description string
}

// EventTemplates holds the fixed template lists per category.
var EventTemplates = map[EventType][]EventTemplate{
	EventScandal: {
		{"Campaign Finance Questions", "Irregularities discovered in campaign donations"},
		{"Staff Controversy", "Senior campaign staffer resigns amid allegations"},
		{"Past Statement Resurfaces", "Old social media posts cause controversy"},
	},
	EventEconomic: {
		{"Jobs Report Released", "Monthly employment numbers shift the narrative"},
		{"Stock Market Swing", "Market volatility becomes campaign issue"},
		{"Inflation Data", "New inflation figures dominate headlines"},
	},
	EventEndorsement: {
		{"Celebrity Endorsement", "Major celebrity publicly backs candidate"},
		{"Union Endorsement", "Powerful labor union announces support"},
		{"Newspaper Endorsement", "Influential newspaper editorial board weighs in"},
		{"Former Rival Endorsement", "Primary opponent endorses candidate"},
	},
	EventGaffe: {
		{"Hot Mic Moment", "Candidate caught saying something regrettable"},
		{"Debate Stumble", "Awkward moment goes viral from debate"},
		{"Geography Gaffe", "Candidate mixes up state facts"},
	},
	EventCrisis: {
		{"Natural Disaster", "Hurricane/wildfire tests crisis leadership"},
		{"International Incident", "Foreign policy crisis emerges"},
		{"Public Health Issue", "Health emergency requires response"},
	},
	EventViral: {
		{"Campaign Ad Goes Viral", "Ad resonates unexpectedly with voters"},
		{"Meme Magic", "Candidate becomes positive internet sensation"},
		{"Town Hall Moment", "Emotional exchange with voter spreads online"},
	},
}
