package engine

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/election"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
)

func newTestGame() game.GameState {
	incumbent := campaign.NewPlayer("Incumbent", true, true)
	challenger := campaign.NewPlayer("Challenger", false, false)
	return game.New(incumbent, challenger, election.InitialStates())
}

func TestUnaffordableActionIsRejectedWithoutSideEffects(t *testing.T) {
	ap := NewActionProcessor()
	gs := newTestGame()
	gs = gs.WithIncumbent(gs.Incumbent.Update(-15, 0)) // drain the war chest

	updated, result := ap.ExecuteAction(gs, campaign.ActionAdCampaign, true, nil)

	if result.Success {
		t.Fatal("Expected the action to be rejected")
	}
	if updated.Incumbent.Funds != 0 || updated.Incumbent.Momentum != 0 {
		t.Error("Rejected action changed player resources")
	}
	if !reflect.DeepEqual(updated.States, gs.States) {
		t.Error("Rejected action changed the state table")
	}
}

func TestFundraiserPayoutRange(t *testing.T) {
	ap := NewActionProcessor()
	for seed := int64(0); seed < 100; seed++ {
		ap.Seed(seed)
		gs, result := ap.ExecuteAction(newTestGame(), campaign.ActionFundraiser, true, nil)

		if !result.Success {
			t.Fatal("Fundraiser should always succeed")
		}
		if result.FundsRaised < FundraiserMin || result.FundsRaised > FundraiserMax {
			t.Fatalf("Seed %d: payout %d outside [%d,%d]", seed, result.FundsRaised, FundraiserMin, FundraiserMax)
		}
		if gs.Incumbent.Funds != 15+result.FundsRaised {
			t.Errorf("Seed %d: funds %d, expected %d", seed, gs.Incumbent.Funds, 15+result.FundsRaised)
		}
		if gs.Incumbent.Momentum != -5 {
			t.Errorf("Seed %d: expected momentum -5, got %d", seed, gs.Incumbent.Momentum)
		}
	}
}

func TestFundraiserMatchesSeededStream(t *testing.T) {
	ap := NewActionProcessor()
	ap.Seed(42)

	_, result := ap.ExecuteAction(newTestGame(), campaign.ActionFundraiser, false, nil)

	want := FundraiserMin + rand.New(rand.NewSource(42)).Intn(FundraiserMax-FundraiserMin+1)
	if result.FundsRaised != want {
		t.Errorf("Expected seeded payout %d, got %d", want, result.FundsRaised)
	}
}

func TestRallyInTargetState(t *testing.T) {
	ap := NewActionProcessor()
	gs, result := ap.ExecuteAction(newTestGame(), campaign.ActionRally, true, []string{"FL"})

	if !result.Success {
		t.Fatal("Rally should succeed with full funds")
	}
	fl := gs.States["FL"]
	if fl.IncumbentSupport != 51.0 {
		t.Errorf("Expected FL incumbent support 51.0, got %.1f", fl.IncumbentSupport)
	}
	if fl.ChallengerSupport != 48.0 {
		t.Errorf("Rally should not touch challenger support, got %.1f", fl.ChallengerSupport)
	}
	if fl.Lean != election.LeanTossup {
		t.Errorf("FL should remain a tossup at +3, got %s", fl.Lean)
	}
	if gs.Incumbent.Funds != 13 {
		t.Errorf("Expected funds 13 after a $2M rally, got %d", gs.Incumbent.Funds)
	}
	if gs.Incumbent.Momentum != 5 {
		t.Errorf("Expected momentum +5, got %d", gs.Incumbent.Momentum)
	}
}

func TestMomentumScalesActionEffect(t *testing.T) {
	ap := NewActionProcessor()
	gs := newTestGame()
	gs = gs.WithIncumbent(gs.Incumbent.AdjustMomentum(100)) // modifier 1.5x

	// Give FL undecided headroom so the boosted effect lands in full.
	fl := gs.States["FL"]
	fl.IncumbentSupport = 40.0
	fl.ChallengerSupport = 40.0
	gs = gs.UpdateState(fl)

	updated, _ := ap.ExecuteAction(gs, campaign.ActionRally, true, []string{"FL"})

	if updated.States["FL"].IncumbentSupport != 44.5 {
		t.Errorf("Expected 40 + 3*1.5 = 44.5, got %.1f", updated.States["FL"].IncumbentSupport)
	}
}

func TestBoostedEffectStillConservesSupportTotal(t *testing.T) {
	ap := NewActionProcessor()
	gs := newTestGame()
	gs = gs.WithIncumbent(gs.Incumbent.AdjustMomentum(100)) // modifier 1.5x

	// FL starts at 48/48; a 4.5 boost would push the sum to 100.5, so
	// both sides rescale proportionally instead.
	updated, _ := ap.ExecuteAction(gs, campaign.ActionRally, true, []string{"FL"})

	fl := updated.States["FL"]
	if fl.IncumbentSupport != 52.2 {
		t.Errorf("Expected rescaled incumbent support 52.2, got %.1f", fl.IncumbentSupport)
	}
	if fl.ChallengerSupport != 47.8 {
		t.Errorf("Expected rescaled challenger support 47.8, got %.1f", fl.ChallengerSupport)
	}
	if fl.Undecided() < 0 {
		t.Errorf("Undecided went negative: %.2f", fl.Undecided())
	}
}

func TestOppositionResearchHitsOpponentEverywhere(t *testing.T) {
	ap := NewActionProcessor()
	gs, result := ap.ExecuteAction(newTestGame(), campaign.ActionOppositionResearch, true, nil)

	if len(result.AffectedStates) != 14 {
		t.Fatalf("Expected all 14 states affected, got %d", len(result.AffectedStates))
	}
	// -2.5 at neutral momentum, full magnitude in every state.
	if gs.States["FL"].ChallengerSupport != 45.5 {
		t.Errorf("Expected FL challenger support 45.5, got %.1f", gs.States["FL"].ChallengerSupport)
	}
	if gs.States["RC"].ChallengerSupport != 55.5 {
		t.Errorf("Expected RC challenger support 55.5, got %.1f", gs.States["RC"].ChallengerSupport)
	}
	if gs.States["FL"].IncumbentSupport != 48.0 {
		t.Error("Opposition research should not touch the actor's own support")
	}
	if gs.Incumbent.Funds != 12 {
		t.Errorf("Expected funds 12 after a $3M action, got %d", gs.Incumbent.Funds)
	}
}

func TestNationalActionAppliesHalfEffect(t *testing.T) {
	ap := NewActionProcessor()
	gs, result := ap.ExecuteAction(newTestGame(), campaign.ActionMediaBlitz, true, nil)

	if len(result.AffectedStates) != 14 {
		t.Fatalf("Expected national reach, got %d states", len(result.AffectedStates))
	}
	// 1.5 * 1.0 * 0.5 = 0.75 per state, rounded to one decimal.
	if gs.States["CA"].IncumbentSupport != 58.8 {
		t.Errorf("Expected CA incumbent support 58.8, got %.1f", gs.States["CA"].IncumbentSupport)
	}
	if gs.States["FL"].IncumbentSupport != 48.8 {
		t.Errorf("Expected FL incumbent support 48.8, got %.1f", gs.States["FL"].IncumbentSupport)
	}
	if gs.Incumbent.Momentum != 8 {
		t.Errorf("Expected momentum +8, got %d", gs.Incumbent.Momentum)
	}
}

func TestTargetedActionAutoSelectsClosestRaces(t *testing.T) {
	ap := NewActionProcessor()
	_, result := ap.ExecuteAction(newTestGame(), campaign.ActionAdCampaign, true, nil)

	want := []string{"FL", "WI", "MI"}
	if !reflect.DeepEqual(result.AffectedStates, want) {
		t.Errorf("Expected auto-selected targets %v, got %v", want, result.AffectedStates)
	}
}

func TestTargetedActionTruncatesExcessTargets(t *testing.T) {
	ap := NewActionProcessor()
	_, result := ap.ExecuteAction(newTestGame(), campaign.ActionRally, true, []string{"FL", "PA", "GA"})

	if len(result.AffectedStates) != 1 {
		t.Fatalf("Rally allows 1 target, got %d", len(result.AffectedStates))
	}
	if result.AffectedStates[0] != "FL" {
		t.Errorf("Expected first listed target FL, got %s", result.AffectedStates[0])
	}
}

func TestAffordableActionsShrinkWithFunds(t *testing.T) {
	ap := NewActionProcessor()

	rich := campaign.Player{Funds: 15}
	if got := len(ap.AffordableActions(rich)); got != 7 {
		t.Errorf("Expected all 7 actions affordable at $15M, got %d", got)
	}

	poor := campaign.Player{Funds: 1}
	affordable := ap.AffordableActions(poor)
	if len(affordable) != 3 {
		t.Fatalf("Expected 3 affordable actions at $1M, got %d", len(affordable))
	}
	if affordable[0].ActionType != campaign.ActionFundraiser {
		t.Errorf("Catalog order broken: first affordable is %s", affordable[0].ActionType)
	}

	broke := campaign.Player{Funds: 0}
	affordable = ap.AffordableActions(broke)
	if len(affordable) != 1 || affordable[0].ActionType != campaign.ActionFundraiser {
		t.Error("A broke campaign can only fundraise")
	}
}
