package campaign

import "testing"

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer("President Incumbent", true, true)

	if p.Funds != 15 {
		t.Errorf("Expected starting funds of 15, got %d", p.Funds)
	}
	if p.Momentum != 0 {
		t.Errorf("Expected starting momentum of 0, got %d", p.Momentum)
	}
	if !p.IsIncumbent || !p.IsHuman {
		t.Error("Role flags were not preserved")
	}
}

func TestMomentumModifier(t *testing.T) {
	cases := []struct {
		momentum int
		want     float64
	}{
		{-100, 0.5},
		{-50, 0.75},
		{0, 1.0},
		{50, 1.25},
		{100, 1.5},
	}
	for _, c := range cases {
		p := Player{Momentum: c.momentum}
		if got := p.MomentumModifier(); got != c.want {
			t.Errorf("Momentum %d: expected modifier %.2f, got %.2f", c.momentum, c.want, got)
		}
	}
}

func TestUpdateClampsFundsAndMomentum(t *testing.T) {
	p := NewPlayer("Test", false, false)

	updated := p.Update(-50, -250)
	if updated.Funds != 0 {
		t.Errorf("Funds should floor at 0, got %d", updated.Funds)
	}
	if updated.Momentum != MinMomentum {
		t.Errorf("Momentum should clamp at %d, got %d", MinMomentum, updated.Momentum)
	}

	updated = p.Update(10, 250)
	if updated.Funds != 25 {
		t.Errorf("Expected 25 funds, got %d", updated.Funds)
	}
	if updated.Momentum != MaxMomentum {
		t.Errorf("Momentum should clamp at %d, got %d", MaxMomentum, updated.Momentum)
	}

	if p.Funds != 15 || p.Momentum != 0 {
		t.Error("Update mutated the original player")
	}
}

func TestCanAffordBoundary(t *testing.T) {
	p := Player{Funds: 3}
	if !p.CanAfford(3) {
		t.Error("Exact funds should be affordable")
	}
	if p.CanAfford(4) {
		t.Error("Cost above funds should not be affordable")
	}
	if !p.CanAfford(0) {
		t.Error("Free actions are always affordable")
	}
}

func TestMomentumDescription(t *testing.T) {
	cases := []struct {
		momentum int
		want     string
	}{
		{75, "Surging"},
		{50, "Surging"},
		{30, "Rising"},
		{0, "Steady"},
		{-30, "Falling"},
		{-80, "Collapsing"},
	}
	for _, c := range cases {
		p := Player{Momentum: c.momentum}
		if got := p.MomentumDescription(); got != c.want {
			t.Errorf("Momentum %d: expected %q, got %q", c.momentum, c.want, got)
		}
	}
}

func TestActionCatalog(t *testing.T) {
	all := AllActions()
	if len(all) != 7 {
		t.Fatalf("Expected 7 actions in the catalog, got %d", len(all))
	}
	if all[0].ActionType != ActionFundraiser {
		t.Errorf("Catalog order changed: first action is %s", all[0].ActionType)
	}

	for _, def := range all {
		if !KnownAction(def.ActionType) {
			t.Errorf("%s missing from the catalog lookup", def.ActionType)
		}
	}
	if KnownAction(ActionType("BRIBERY")) {
		t.Error("Unknown action reported as known")
	}
}

func TestActionResultNetFunds(t *testing.T) {
	r := ActionResult{FundsRaised: 5, FundsSpent: 2}
	if r.NetFundsChange() != 3 {
		t.Errorf("Expected net +3, got %d", r.NetFundsChange())
	}
}
