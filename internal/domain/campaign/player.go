// Package campaign defines the per-candidate resources and the action
// catalog. This package is PURE and must NOT import any infrastructure
// packages (network, events, platform).
package campaign

import "fmt"

// Momentum bounds.
const (
	MinMomentum = -100
	MaxMomentum = 100
)

// Player represents one campaign (human or AI controlled).
// Funds are in millions of dollars.
type Player struct {
	Name        string `json:"name"`
	IsIncumbent bool   `json:"is_incumbent"`
	Funds       int    `json:"funds"`
	Momentum    int    `json:"momentum"`
	IsHuman     bool   `json:"is_human"`
}

// NewPlayer creates a campaign with the standard starting resources.
func NewPlayer(name string, isIncumbent, isHuman bool) Player {
	return Player{
		Name:        name,
		IsIncumbent: isIncumbent,
		Funds:       15,
		Momentum:    0,
		IsHuman:     isHuman,
	}
}

// MomentumModifier scales action effectiveness.
// Linear scale: -100 -> 0.5x, 0 -> 1.0x, +100 -> 1.5x.
func (p Player) MomentumModifier() float64 {
	return 1.0 + float64(p.Momentum)/200.0
}

// MomentumDescription returns a narrative label for the current momentum.
func (p Player) MomentumDescription() string {
	switch {
	case p.Momentum >= 50:
		return "Surging"
	case p.Momentum >= 20:
		return "Rising"
	case p.Momentum >= -20:
		return "Steady"
	case p.Momentum >= -50:
		return "Falling"
	}
	return "Collapsing"
}

// FundsDisplay formats funds for presentation.
func (p Player) FundsDisplay() string {
	return fmt.Sprintf("$%dM", p.Funds)
}

// CanAfford reports whether the player can pay an action's cost.
func (p Player) CanAfford(cost int) bool {
	return p.Funds >= cost
}

// AddFunds returns a new player with the given amount added.
func (p Player) AddFunds(amount int) Player {
	p.Funds += amount
	return p
}

// AdjustMomentum returns a new player with momentum shifted and clamped.
func (p Player) AdjustMomentum(change int) Player {
	p.Momentum = clampMomentum(p.Momentum + change)
	return p
}

// Update applies a funds delta (floored at zero) and a momentum delta
// (clamped) in one step and returns the new player.
func (p Player) Update(fundsChange, momentumChange int) Player {
	p.Funds += fundsChange
	if p.Funds < 0 {
		p.Funds = 0
	}
	p.Momentum = clampMomentum(p.Momentum + momentumChange)
	return p
}

func (p Player) String() string {
	role := "Challenger"
	if p.IsIncumbent {
		role = "Incumbent"
	}
	return fmt.Sprintf("%s (%s): %s, Momentum: %d", p.Name, role, p.FundsDisplay(), p.Momentum)
}

func clampMomentum(m int) int {
	if m < MinMomentum {
		return MinMomentum
	}
	if m > MaxMomentum {
		return MaxMomentum
	}
	return m
}
