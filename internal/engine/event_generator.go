package engine

import (
	"math"
	"math/rand"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
)

// EventProbability is the per-turn chance of a random event.
const EventProbability = 0.4

// StateSpecificProbability is the chance a generated event hits specific
// states instead of the whole nation.
const StateSpecificProbability = 0.3

// effectRange bounds the sampled support and momentum swings per category.
type effectRange struct {
	supportMin, supportMax   float64
	momentumMin, momentumMax int
}

var eventEffects = map[game.EventType]effectRange{
	game.EventScandal:     {-4.0, -2.0, -15, -5},
	game.EventEconomic:    {-2.0, 2.0, -10, 10},
	game.EventEndorsement: {1.5, 3.5, 5, 15},
	game.EventGaffe:       {-3.0, -1.0, -10, -5},
	game.EventCrisis:      {-3.0, 3.0, -5, 15},
	game.EventViral:       {1.0, 3.0, 5, 20},
}

// EventGenerator injects random national and state-level events into the game.
type EventGenerator struct {
	rng *rand.Rand
}

// NewEventGenerator creates a generator with an unseeded stream.
// Call Seed for reproducible games.
func NewEventGenerator() *EventGenerator {
	return &EventGenerator{rng: rand.New(rand.NewSource(1))}
}

// Seed resets the generator's random stream for reproducibility.
func (eg *EventGenerator) Seed(seed int64) {
	eg.rng = rand.New(rand.NewSource(seed))
}

// MaybeGenerateEvent rolls the per-turn event chance. Returns nil 60% of
// the time.
func (eg *EventGenerator) MaybeGenerateEvent(gs game.GameState) *game.GameEvent {
	if eg.rng.Float64() > EventProbability {
		return nil
	}
	event := eg.GenerateEvent(gs)
	return &event
}

// GenerateEvent samples a random event: uniform category, uniform
// template, 50/50 affected side, effects within the category ranges,
// and a 30% chance of hitting 1-3 specific states.
func (eg *EventGenerator) GenerateEvent(gs game.GameState) game.GameEvent {
	eventType := game.EventTypeOrder[eg.rng.Intn(len(game.EventTypeOrder))]

	templates := game.EventTemplates[eventType]
	template := templates[eg.rng.Intn(len(templates))]

	affectsIncumbent := eg.rng.Intn(2) == 0

	effects := eventEffects[eventType]
	supportChange := effects.supportMin + eg.rng.Float64()*(effects.supportMax-effects.supportMin)
	momentumChange := effects.momentumMin + eg.rng.Intn(effects.momentumMax-effects.momentumMin+1)

	var affectedStates []string
	if eg.rng.Float64() < StateSpecificProbability {
		numStates := 1 + eg.rng.Intn(3)
		if numStates > len(gs.Order) {
			numStates = len(gs.Order)
		}
		affectedStates = eg.sampleStates(gs, numStates)
	}

	return game.GameEvent{
		EventType:        eventType,
		Title:            template.Title,
		Description:      template.Description,
		AffectsIncumbent: affectsIncumbent,
		SupportChange:    math.Round(supportChange*10) / 10,
		MomentumChange:   momentumChange,
		AffectedStates:   affectedStates,
		TurnOccurred:     gs.CurrentTurn,
	}
}

// ApplyEvent folds an event into the game state: momentum to the
// affected player, support to every state at half strength for national
// events or full strength for the listed states, and the event appended
// to the log.
func (eg *EventGenerator) ApplyEvent(gs game.GameState, event game.GameEvent) game.GameState {
	if event.AffectsIncumbent {
		gs = gs.WithIncumbent(gs.Incumbent.AdjustMomentum(event.MomentumChange))
	} else {
		gs = gs.WithChallenger(gs.Challenger.AdjustMomentum(event.MomentumChange))
	}

	table := gs.CopyStateTable()
	if event.IsNational() {
		effect := event.SupportChange * 0.5
		for _, abbrev := range gs.Order {
			state := table[abbrev]
			if event.AffectsIncumbent {
				table[abbrev] = state.ApplySupportChange(effect, 0)
			} else {
				table[abbrev] = state.ApplySupportChange(0, effect)
			}
		}
	} else {
		for _, abbrev := range event.AffectedStates {
			state, ok := table[abbrev]
			if !ok {
				continue
			}
			if event.AffectsIncumbent {
				table[abbrev] = state.ApplySupportChange(event.SupportChange, 0)
			} else {
				table[abbrev] = state.ApplySupportChange(0, event.SupportChange)
			}
		}
	}

	return gs.UpdateStates(table).AddEvent(event)
}

// GenerateCrisisEvent produces a forced crisis for scripted scenarios.
func (eg *EventGenerator) GenerateCrisisEvent(gs game.GameState, affectsIncumbent bool) game.GameEvent {
	templates := game.EventTemplates[game.EventCrisis]
	template := templates[eg.rng.Intn(len(templates))]

	effects := eventEffects[game.EventCrisis]
	supportChange := effects.supportMin + eg.rng.Float64()*(effects.supportMax-effects.supportMin)
	momentumChange := effects.momentumMin + eg.rng.Intn(effects.momentumMax-effects.momentumMin+1)

	return game.GameEvent{
		EventType:        game.EventCrisis,
		Title:            template.Title,
		Description:      template.Description,
		AffectsIncumbent: affectsIncumbent,
		SupportChange:    math.Round(supportChange*10) / 10,
		MomentumChange:   momentumChange,
		AffectedStates:   nil,
		TurnOccurred:     gs.CurrentTurn,
	}
}

// sampleStates draws distinct states uniformly without replacement,
// using a permutation over the canonical order so the draw is
// reproducible for a given seed.
func (eg *EventGenerator) sampleStates(gs game.GameState, count int) []string {
	perm := eg.rng.Perm(len(gs.Order))
	out := make([]string, 0, count)
	for _, idx := range perm[:count] {
		out = append(out, gs.Order[idx])
	}
	return out
}
