package game

import (
	"math"
	"testing"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/election"
)

func newTestState() GameState {
	incumbent := campaign.NewPlayer("Incumbent", true, true)
	challenger := campaign.NewPlayer("Challenger", false, false)
	return New(incumbent, challenger, election.InitialStates())
}

func TestNewGameState(t *testing.T) {
	gs := newTestState()

	if gs.CurrentTurn != 1 || gs.MaxTurns != 20 {
		t.Errorf("Expected turn 1 of 20, got %d of %d", gs.CurrentTurn, gs.MaxTurns)
	}
	if gs.TurnsRemaining() != 20 {
		t.Errorf("Expected 20 turns remaining, got %d", gs.TurnsRemaining())
	}
	if len(gs.States) != 14 || len(gs.Order) != 14 {
		t.Errorf("Expected 14 states in table and order, got %d and %d", len(gs.States), len(gs.Order))
	}
	if gs.TotalElectoralVotes() != 538 {
		t.Errorf("Expected 538 electoral votes, got %d", gs.TotalElectoralVotes())
	}
}

func TestInitialElectoralSplit(t *testing.T) {
	gs := newTestState()

	inc := gs.IncumbentElectoralVotes()
	chl := gs.ChallengerElectoralVotes()
	tied := gs.TiedElectoralVotes()

	if inc != 262 {
		t.Errorf("Expected incumbent to start with 262 EVs, got %d", inc)
	}
	if chl != 236 {
		t.Errorf("Expected challenger to start with 236 EVs, got %d", chl)
	}
	if tied != 40 {
		t.Errorf("Expected 40 tied EVs, got %d", tied)
	}
	if inc+chl+tied != 538 {
		t.Errorf("EV partition does not sum to 538: %d", inc+chl+tied)
	}
}

func TestNationalPollingIsEVWeighted(t *testing.T) {
	gs := newTestState()

	inc := gs.IncumbentNationalPolling()
	chl := gs.ChallengerNationalPolling()

	if inc <= 0 || inc >= 100 || chl <= 0 || chl >= 100 {
		t.Fatalf("Polling out of range: %.1f / %.1f", inc, chl)
	}
	// Verify against a direct weighted sum.
	var want float64
	for _, s := range gs.StatesInOrder() {
		want += s.IncumbentSupport * float64(s.ElectoralVotes)
	}
	want /= 538.0
	if math.Abs(inc-want) > 1e-9 {
		t.Errorf("Expected weighted polling %.4f, got %.4f", want, inc)
	}
}

func TestUpdateStateIsCopyOnWrite(t *testing.T) {
	gs := newTestState()
	fl, _ := gs.GetState("fl")

	updated := gs.UpdateState(fl.ApplySupportChange(3.0, 0))

	if gs.States["FL"].IncumbentSupport != 48.0 {
		t.Error("Original state table was mutated")
	}
	if updated.States["FL"].IncumbentSupport != 51.0 {
		t.Errorf("Expected updated FL at 51.0, got %.1f", updated.States["FL"].IncumbentSupport)
	}
}

func TestRecentEventsCapsAtTen(t *testing.T) {
	gs := newTestState()
	for i := 0; i < 15; i++ {
		gs = gs.AddEvent(GameEvent{EventType: EventGaffe, TurnOccurred: i + 1})
	}

	recent := gs.RecentEvents()
	if len(recent) != 10 {
		t.Fatalf("Expected last 10 events, got %d", len(recent))
	}
	if recent[0].TurnOccurred != 6 {
		t.Errorf("Expected oldest recent event from turn 6, got %d", recent[0].TurnOccurred)
	}
}

func TestStatesByRegion(t *testing.T) {
	gs := newTestState()

	midwest := gs.StatesByRegion("Midwest")
	if len(midwest) != 4 {
		t.Fatalf("Expected 4 Midwest states, got %d", len(midwest))
	}
	if midwest[0].Abbreviation != "IL" {
		t.Errorf("Expected canonical order starting with IL, got %s", midwest[0].Abbreviation)
	}
}

func TestCompetitiveStates(t *testing.T) {
	gs := newTestState()

	competitive := gs.CompetitiveStates()
	if len(competitive) != 9 {
		t.Fatalf("Expected 9 competitive states at start, got %d", len(competitive))
	}
}

func TestLifecycleTransitions(t *testing.T) {
	gs := newTestState()

	advanced := gs.AdvanceTurn()
	if advanced.CurrentTurn != 2 || gs.CurrentTurn != 1 {
		t.Error("AdvanceTurn should return a new value without mutating the original")
	}

	ended := gs.EndGame("Incumbent")
	if !ended.GameOver || ended.Winner != "Incumbent" {
		t.Error("EndGame did not mark the game finished")
	}
	if gs.GameOver {
		t.Error("EndGame mutated the original")
	}
}

func TestEventTemplatesExistForEveryType(t *testing.T) {
	for _, et := range EventTypeOrder {
		templates := EventTemplates[et]
		if len(templates) == 0 {
			t.Errorf("No templates for event type %s", et)
		}
		for _, tpl := range templates {
			if tpl.Title == "" || tpl.Description == "" {
				t.Errorf("Empty template for event type %s", et)
			}
		}
	}
}
