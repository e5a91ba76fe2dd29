package engine

import (
	"testing"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
)

func TestEventFrequencyMatchesProbability(t *testing.T) {
	eg := NewEventGenerator()
	eg.Seed(7)
	gs := newTestGame()

	occurred := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		if eg.MaybeGenerateEvent(gs) != nil {
			occurred++
		}
	}

	// p=0.4 over 1000 trials; allow a wide band around the mean.
	if occurred < 320 || occurred > 480 {
		t.Errorf("Expected roughly 400 events out of %d, got %d", trials, occurred)
	}
}

func TestGeneratedEventsStayWithinCategoryRanges(t *testing.T) {
	eg := NewEventGenerator()
	eg.Seed(99)
	gs := newTestGame()

	for i := 0; i < 200; i++ {
		event := eg.GenerateEvent(gs)

		effects, ok := eventEffects[event.EventType]
		if !ok {
			t.Fatalf("Unknown event type generated: %s", event.EventType)
		}
		// Support is rounded to one decimal; allow the rounding slack.
		if event.SupportChange < effects.supportMin-0.05 || event.SupportChange > effects.supportMax+0.05 {
			t.Errorf("%s support change %.2f outside [%.1f,%.1f]",
				event.EventType, event.SupportChange, effects.supportMin, effects.supportMax)
		}
		if event.MomentumChange < effects.momentumMin || event.MomentumChange > effects.momentumMax {
			t.Errorf("%s momentum change %d outside [%d,%d]",
				event.EventType, event.MomentumChange, effects.momentumMin, effects.momentumMax)
		}
		if event.Title == "" || event.Description == "" {
			t.Error("Generated event missing template text")
		}
		if event.TurnOccurred != gs.CurrentTurn {
			t.Errorf("Event stamped with turn %d, expected %d", event.TurnOccurred, gs.CurrentTurn)
		}
		if len(event.AffectedStates) > 3 {
			t.Errorf("Event hit %d states, maximum is 3", len(event.AffectedStates))
		}
		for _, abbrev := range event.AffectedStates {
			if _, ok := gs.States[abbrev]; !ok {
				t.Errorf("Event targeted unknown state %q", abbrev)
			}
		}
	}
}

func TestApplyNationalEventHalvesSupportEffect(t *testing.T) {
	eg := NewEventGenerator()
	gs := newTestGame()

	event := game.GameEvent{
		EventType:        game.EventScandal,
		Title:            "Staff Controversy",
		AffectsIncumbent: true,
		SupportChange:    -4.0,
		MomentumChange:   -10,
		TurnOccurred:     1,
	}

	updated := eg.ApplyEvent(gs, event)

	// National events land at half strength in every state.
	if updated.States["CA"].IncumbentSupport != 56.0 {
		t.Errorf("Expected CA incumbent support 56.0, got %.1f", updated.States["CA"].IncumbentSupport)
	}
	if updated.States["FL"].IncumbentSupport != 46.0 {
		t.Errorf("Expected FL incumbent support 46.0, got %.1f", updated.States["FL"].IncumbentSupport)
	}
	if updated.Incumbent.Momentum != -10 {
		t.Errorf("Expected incumbent momentum -10, got %d", updated.Incumbent.Momentum)
	}
	if updated.Challenger.Momentum != 0 {
		t.Error("Event leaked momentum to the unaffected side")
	}
	if len(updated.EventsLog) != 1 {
		t.Errorf("Expected 1 logged event, got %d", len(updated.EventsLog))
	}
}

func TestApplyStateSpecificEventUsesFullEffect(t *testing.T) {
	eg := NewEventGenerator()
	gs := newTestGame()

	event := game.GameEvent{
		EventType:        game.EventViral,
		Title:            "Meme Magic",
		AffectsIncumbent: false,
		SupportChange:    3.0,
		MomentumChange:   10,
		AffectedStates:   []string{"FL"},
		TurnOccurred:     1,
	}

	updated := eg.ApplyEvent(gs, event)

	if updated.States["FL"].ChallengerSupport != 51.0 {
		t.Errorf("Expected FL challenger support 51.0, got %.1f", updated.States["FL"].ChallengerSupport)
	}
	if updated.States["GA"].ChallengerSupport != 49.0 {
		t.Error("State-specific event leaked into other states")
	}
	if updated.Challenger.Momentum != 10 {
		t.Errorf("Expected challenger momentum +10, got %d", updated.Challenger.Momentum)
	}
}

func TestGenerateCrisisEvent(t *testing.T) {
	eg := NewEventGenerator()
	eg.Seed(3)
	gs := newTestGame()

	event := eg.GenerateCrisisEvent(gs, true)

	if event.EventType != game.EventCrisis {
		t.Errorf("Expected a crisis event, got %s", event.EventType)
	}
	if !event.AffectsIncumbent {
		t.Error("Crisis target side was not honored")
	}
	if !event.IsNational() {
		t.Error("Forced crises are national")
	}
}
