package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mcortes/CampaignManager2026/server/internal/domain/game"
)

// Election outcome constants.
const (
	VotesToWin      = 270
	TotalVotes      = 538
	LandslideMargin = 100
)

// Winner labels.
const (
	WinnerIncumbent  = "Incumbent"
	WinnerChallenger = "Challenger"
)

// ElectionResult is the final tally, computed once at game end.
type ElectionResult struct {
	Winner            string            `json:"winner"`
	IncumbentEVs      int               `json:"incumbent_evs"`
	ChallengerEVs     int               `json:"challenger_evs"`
	IncumbentPopular  float64           `json:"incumbent_popular"`
	ChallengerPopular float64           `json:"challenger_popular"`
	StateResults      map[string]string `json:"state_results"` // abbrev -> winner
	Margin            int               `json:"margin"`        // positive = incumbent win
	IsLandslide       bool              `json:"is_landslide"`  // won by 100+ EVs
}

// BattlegroundStatus describes one competitive state for analysis views.
type BattlegroundStatus struct {
	Name              string  `json:"name"`
	ElectoralVotes    int     `json:"evs"`
	Leader            string  `json:"leader"`
	Margin            float64 `json:"margin"`
	Status            string  `json:"status"`
	IncumbentSupport  float64 `json:"incumbent_support"`
	ChallengerSupport float64 `json:"challenger_support"`
}

// ElectoralCalculator tallies votes and determines the winner. Tied
// states at finalize time are resolved by coin flips drawn from its own
// seedable stream.
type ElectoralCalculator struct {
	rng *rand.Rand
}

// NewElectoralCalculator creates a calculator with an unseeded stream.
func NewElectoralCalculator() *ElectoralCalculator {
	return &ElectoralCalculator{rng: rand.New(rand.NewSource(1))}
}

// Seed resets the calculator's coin-flip stream for reproducibility.
func (ec *ElectoralCalculator) Seed(seed int64) {
	ec.rng = rand.New(rand.NewSource(seed))
}

// CalculateCurrentEVs tallies electoral votes by strict support
// comparison; exactly tied states count as tied.
func (ec *ElectoralCalculator) CalculateCurrentEVs(gs game.GameState) (incumbentEVs, challengerEVs, tiedEVs int) {
	for _, s := range gs.States {
		switch {
		case s.IncumbentSupport > s.ChallengerSupport:
			incumbentEVs += s.ElectoralVotes
		case s.ChallengerSupport > s.IncumbentSupport:
			challengerEVs += s.ElectoralVotes
		default:
			tiedEVs += s.ElectoralVotes
		}
	}
	return incumbentEVs, challengerEVs, tiedEVs
}

// CalculateFinalResult produces the election night outcome. Ties are
// resolved by an unweighted coin flip per state, walked in canonical
// order so a seeded run is reproducible. If neither side reaches 270
// the higher count wins; a true overall tie goes to the incumbent (the
// House decides).
func (ec *ElectoralCalculator) CalculateFinalResult(gs game.GameState) ElectionResult {
	incumbentEVs := 0
	challengerEVs := 0
	stateResults := make(map[string]string, len(gs.Order))

	for _, abbrev := range gs.Order {
		s := gs.States[abbrev]
		switch {
		case s.IncumbentSupport > s.ChallengerSupport:
			incumbentEVs += s.ElectoralVotes
			stateResults[abbrev] = WinnerIncumbent
		case s.ChallengerSupport > s.IncumbentSupport:
			challengerEVs += s.ElectoralVotes
			stateResults[abbrev] = WinnerChallenger
		default:
			if ec.rng.Intn(2) == 0 {
				incumbentEVs += s.ElectoralVotes
				stateResults[abbrev] = WinnerIncumbent
			} else {
				challengerEVs += s.ElectoralVotes
				stateResults[abbrev] = WinnerChallenger
			}
		}
	}

	margin := incumbentEVs - challengerEVs

	var winner string
	switch {
	case incumbentEVs >= VotesToWin:
		winner = WinnerIncumbent
	case challengerEVs >= VotesToWin:
		winner = WinnerChallenger
	case incumbentEVs > challengerEVs:
		winner = WinnerIncumbent
	case challengerEVs > incumbentEVs:
		winner = WinnerChallenger
	default:
		winner = WinnerIncumbent
	}

	return ElectionResult{
		Winner:            winner,
		IncumbentEVs:      incumbentEVs,
		ChallengerEVs:     challengerEVs,
		IncumbentPopular:  math.Round(gs.IncumbentNationalPolling()*10) / 10,
		ChallengerPopular: math.Round(gs.ChallengerNationalPolling()*10) / 10,
		StateResults:      stateResults,
		Margin:            margin,
		IsLandslide:       abs(margin) >= LandslideMargin,
	}
}

// PathToVictory returns the most efficient set of not-yet-won states to
// reach 270: ranked by electoral votes per point of margin to flip,
// greedily accumulated. Empty if the side already holds 270.
func (ec *ElectoralCalculator) PathToVictory(gs game.GameState, forIncumbent bool) []string {
	currentEVs := 0
	for _, s := range gs.States {
		if forIncumbent && s.IncumbentSupport > s.ChallengerSupport {
			currentEVs += s.ElectoralVotes
		}
		if !forIncumbent && s.ChallengerSupport > s.IncumbentSupport {
			currentEVs += s.ElectoralVotes
		}
	}
	if currentEVs >= VotesToWin {
		return nil
	}

	type flipTarget struct {
		abbrev     string
		evs        int
		efficiency float64
	}
	var remaining []flipTarget
	for _, abbrev := range gs.Order {
		s := gs.States[abbrev]
		var flipMargin float64
		if forIncumbent {
			if s.IncumbentSupport > s.ChallengerSupport {
				continue
			}
			flipMargin = s.ChallengerSupport - s.IncumbentSupport
		} else {
			if s.ChallengerSupport > s.IncumbentSupport {
				continue
			}
			flipMargin = s.IncumbentSupport - s.ChallengerSupport
		}
		remaining = append(remaining, flipTarget{
			abbrev:     abbrev,
			evs:        s.ElectoralVotes,
			efficiency: float64(s.ElectoralVotes) / math.Max(flipMargin, 0.1),
		})
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].efficiency > remaining[j].efficiency
	})

	var needed []string
	evsNeeded := VotesToWin - currentEVs
	for _, t := range remaining {
		needed = append(needed, t.abbrev)
		evsNeeded -= t.evs
		if evsNeeded <= 0 {
			break
		}
	}
	return needed
}

// IsMathematicallyEliminated reports whether the opponent already has
// 270+ electoral votes locked behind margins over 15 points.
func (ec *ElectoralCalculator) IsMathematicallyEliminated(gs game.GameState, forIncumbent bool) bool {
	locked := 0
	for _, s := range gs.States {
		if forIncumbent {
			if s.ChallengerSupport-s.IncumbentSupport > 15 {
				locked += s.ElectoralVotes
			}
		} else {
			if s.IncumbentSupport-s.ChallengerSupport > 15 {
				locked += s.ElectoralVotes
			}
		}
	}
	return locked >= VotesToWin
}

// BattlegroundAnalysis summarizes every competitive state.
func (ec *ElectoralCalculator) BattlegroundAnalysis(gs game.GameState) map[string]BattlegroundStatus {
	analysis := make(map[string]BattlegroundStatus)
	for _, abbrev := range gs.Order {
		s := gs.States[abbrev]
		if !s.Competitive() {
			continue
		}
		leader := s.Leader()
		margin := math.Abs(s.Margin())

		var status string
		switch {
		case margin < 2:
			status = "Tossup"
		case margin < 5:
			status = "Lean " + leader
		default:
			status = "Likely " + leader
		}

		analysis[abbrev] = BattlegroundStatus{
			Name:              s.Name,
			ElectoralVotes:    s.ElectoralVotes,
			Leader:            leader,
			Margin:            math.Round(margin*10) / 10,
			Status:            status,
			IncumbentSupport:  s.IncumbentSupport,
			ChallengerSupport: s.ChallengerSupport,
		}
	}
	return analysis
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
