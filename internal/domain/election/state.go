// Package election defines the per-state polling entities for the campaign.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package election

import "math"

// Lean is the derived qualitative label for a state's margin.
type Lean string

const (
	LeanSafeIncumbent  Lean = "Safe Inc"
	LeanLeanIncumbent  Lean = "Lean Inc"
	LeanTossup         Lean = "Tossup"
	LeanLeanChallenger Lean = "Lean Chl"
	LeanSafeChallenger Lean = "Safe Chl"
)

// State represents one state (or coalition of states) in the election.
// Support values are percentages; the remainder up to 100 is undecided.
type State struct {
	Name              string  `json:"name"`
	Abbreviation      string  `json:"abbreviation"`
	ElectoralVotes    int     `json:"electoral_votes"`
	IncumbentSupport  float64 `json:"incumbent_support"`
	ChallengerSupport float64 `json:"challenger_support"`
	Lean              Lean    `json:"lean"`
	Region            string  `json:"region"`
}

// Undecided returns the share of voters committed to neither campaign.
func (s State) Undecided() float64 {
	return math.Max(0.0, 100.0-s.IncumbentSupport-s.ChallengerSupport)
}

// Margin returns incumbent support minus challenger support.
// Positive means the incumbent leads.
func (s State) Margin() float64 {
	return s.IncumbentSupport - s.ChallengerSupport
}

// Leader returns which campaign currently leads the state.
func (s State) Leader() string {
	switch {
	case s.Margin() > 0:
		return "Incumbent"
	case s.Margin() < 0:
		return "Challenger"
	}
	return "Tied"
}

// Competitive reports whether the state is within 10 points.
func (s State) Competitive() bool {
	return math.Abs(s.Margin()) <= 10.0
}

// ApplySupportChange applies polling deltas and returns a new State.
// Each side is clamped to [0,100]; if the combined support would exceed
// 100 both sides are rescaled proportionally so undecided never goes
// negative. Supports are rounded to one decimal and the lean label is
// recomputed.
func (s State) ApplySupportChange(incumbentChange, challengerChange float64) State {
	newIncumbent := math.Max(0.0, math.Min(100.0, s.IncumbentSupport+incumbentChange))
	newChallenger := math.Max(0.0, math.Min(100.0, s.ChallengerSupport+challengerChange))

	total := newIncumbent + newChallenger
	if total > 100.0 {
		ratio := 100.0 / total
		newIncumbent *= ratio
		newChallenger *= ratio
	}

	return State{
		Name:              s.Name,
		Abbreviation:      s.Abbreviation,
		ElectoralVotes:    s.ElectoralVotes,
		IncumbentSupport:  round1(newIncumbent),
		ChallengerSupport: round1(newChallenger),
		Lean:              calculateLean(newIncumbent - newChallenger),
		Region:            s.Region,
	}
}

func calculateLean(margin float64) Lean {
	switch {
	case margin >= 15:
		return LeanSafeIncumbent
	case margin >= 5:
		return LeanLeanIncumbent
	case margin > -5:
		return LeanTossup
	case margin > -15:
		return LeanLeanChallenger
	}
	return LeanSafeChallenger
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
