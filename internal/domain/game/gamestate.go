// Package game holds the aggregate root for one running election.
//
// ARCHITECTURAL RULE: every update returns a NEW GameState. Nothing in
// this package mutates a value in place; the engine holds the single
// current reference between calls. Derived figures (electoral votes,
// national polling, competitive states) are always computed from the
// state table on demand so they can never go stale.
package game

import (
	"strings"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/election"
)

// VotesToWin is the electoral vote threshold for outright victory.
const VotesToWin = 270

// GameState is the central container for all game state.
//
// States is keyed by abbreviation; Order preserves the configuration's
// insertion order. Go maps iterate randomly, and the determinism
// guarantee (same seed + same actions = same trajectory) needs every
// ordered walk over states to use Order instead.
type GameState struct {
	Incumbent   campaign.Player            `json:"incumbent"`
	Challenger  campaign.Player            `json:"challenger"`
	States      map[string]election.State  `json:"states"`
	Order       []string                   `json:"order"`
	CurrentTurn int                        `json:"current_turn"`
	MaxTurns    int                        `json:"max_turns"`
	EventsLog   []GameEvent                `json:"events_log"`
	GameOver    bool                       `json:"game_over"`
	Winner      string                     `json:"winner"`
}

// New builds the aggregate from players and an ordered state configuration.
func New(incumbent, challenger campaign.Player, states []election.State) GameState {
	table := make(map[string]election.State, len(states))
	order := make([]string, 0, len(states))
	for _, s := range states {
		table[s.Abbreviation] = s
		order = append(order, s.Abbreviation)
	}
	return GameState{
		Incumbent:   incumbent,
		Challenger:  challenger,
		States:      table,
		Order:       order,
		CurrentTurn: 1,
		MaxTurns:    20,
		EventsLog:   nil,
		GameOver:    false,
		Winner:      "",
	}
}

// TurnsRemaining counts the current turn as still playable.
func (g GameState) TurnsRemaining() int {
	return g.MaxTurns - g.CurrentTurn + 1
}

// StatesInOrder returns the state values in canonical order.
func (g GameState) StatesInOrder() []election.State {
	out := make([]election.State, 0, len(g.Order))
	for _, abbrev := range g.Order {
		out = append(out, g.States[abbrev])
	}
	return out
}

// IncumbentElectoralVotes sums the EVs of states the incumbent strictly leads.
func (g GameState) IncumbentElectoralVotes() int {
	total := 0
	for _, s := range g.States {
		if s.IncumbentSupport > s.ChallengerSupport {
			total += s.ElectoralVotes
		}
	}
	return total
}

// ChallengerElectoralVotes sums the EVs of states the challenger strictly leads.
func (g GameState) ChallengerElectoralVotes() int {
	total := 0
	for _, s := range g.States {
		if s.ChallengerSupport > s.IncumbentSupport {
			total += s.ElectoralVotes
		}
	}
	return total
}

// TiedElectoralVotes sums the EVs of exactly tied states.
func (g GameState) TiedElectoralVotes() int {
	total := 0
	for _, s := range g.States {
		if s.IncumbentSupport == s.ChallengerSupport {
			total += s.ElectoralVotes
		}
	}
	return total
}

// TotalElectoralVotes sums every state's EVs (538 with the shipped map).
func (g GameState) TotalElectoralVotes() int {
	total := 0
	for _, s := range g.States {
		total += s.ElectoralVotes
	}
	return total
}

// IncumbentNationalPolling is the EV-weighted national support average.
func (g GameState) IncumbentNationalPolling() float64 {
	if len(g.States) == 0 {
		return 0.0
	}
	total := 0.0
	for _, s := range g.States {
		total += s.IncumbentSupport * float64(s.ElectoralVotes)
	}
	return total / float64(g.TotalElectoralVotes())
}

// ChallengerNationalPolling is the EV-weighted national support average.
func (g GameState) ChallengerNationalPolling() float64 {
	if len(g.States) == 0 {
		return 0.0
	}
	total := 0.0
	for _, s := range g.States {
		total += s.ChallengerSupport * float64(s.ElectoralVotes)
	}
	return total / float64(g.TotalElectoralVotes())
}

// CompetitiveStates returns the states within 10 points, in canonical order.
func (g GameState) CompetitiveStates() []election.State {
	var out []election.State
	for _, abbrev := range g.Order {
		if s := g.States[abbrev]; s.Competitive() {
			out = append(out, s)
		}
	}
	return out
}

// RecentEvents returns the last 10 logged events.
func (g GameState) RecentEvents() []GameEvent {
	if len(g.EventsLog) <= 10 {
		return g.EventsLog
	}
	return g.EventsLog[len(g.EventsLog)-10:]
}

// GetState looks up a state by abbreviation (case-insensitive).
func (g GameState) GetState(abbreviation string) (election.State, bool) {
	s, ok := g.States[strings.ToUpper(abbreviation)]
	return s, ok
}

// StatesByRegion returns every state in the given region, in canonical order.
func (g GameState) StatesByRegion(region string) []election.State {
	var out []election.State
	for _, abbrev := range g.Order {
		if s := g.States[abbrev]; s.Region == region {
			out = append(out, s)
		}
	}
	return out
}

// UpdateState replaces one state entry and returns the new aggregate.
func (g GameState) UpdateState(s election.State) GameState {
	g.States = copyStates(g.States)
	g.States[s.Abbreviation] = s
	return g
}

// UpdateStates replaces the whole state table and returns the new aggregate.
// The caller must pass a fresh map; it is owned by the result.
func (g GameState) UpdateStates(table map[string]election.State) GameState {
	g.States = table
	return g
}

// AddEvent appends a game event to the log and returns the new aggregate.
func (g GameState) AddEvent(event GameEvent) GameState {
	log := make([]GameEvent, len(g.EventsLog), len(g.EventsLog)+1)
	copy(log, g.EventsLog)
	g.EventsLog = append(log, event)
	return g
}

// AdvanceTurn moves to the next turn.
func (g GameState) AdvanceTurn() GameState {
	g.CurrentTurn++
	return g
}

// EndGame marks the game finished with a winner.
func (g GameState) EndGame(winner string) GameState {
	g.GameOver = true
	g.Winner = winner
	return g
}

// WithIncumbent swaps in a new incumbent value.
func (g GameState) WithIncumbent(p campaign.Player) GameState {
	g.Incumbent = p
	return g
}

// WithChallenger swaps in a new challenger value.
func (g GameState) WithChallenger(p campaign.Player) GameState {
	g.Challenger = p
	return g
}

// CopyStateTable returns a shallow copy of the state table for copy-on-write updates.
func (g GameState) CopyStateTable() map[string]election.State {
	return copyStates(g.States)
}

func copyStates(in map[string]election.State) map[string]election.State {
	out := make(map[string]election.State, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
