package election

// Initial map configuration: 14 states/regions totaling 538 electoral votes.
// Starting balance:
//   - ~101 Safe Incumbent EVs
//   - ~127 Lean Incumbent EVs
//   - ~101 Tossup EVs
//   - ~33 Lean Challenger EVs
//   - ~176 Safe Challenger EVs
var initialStates = []State{
	// Safe Incumbent
	{Name: "California", Abbreviation: "CA", ElectoralVotes: 54, IncumbentSupport: 58.0, ChallengerSupport: 38.0, Lean: LeanSafeIncumbent, Region: "West"},
	{Name: "New York", Abbreviation: "NY", ElectoralVotes: 28, IncumbentSupport: 56.0, ChallengerSupport: 40.0, Lean: LeanSafeIncumbent, Region: "Northeast"},
	{Name: "Illinois", Abbreviation: "IL", ElectoralVotes: 19, IncumbentSupport: 55.0, ChallengerSupport: 41.0, Lean: LeanSafeIncumbent, Region: "Midwest"},

	// Lean Incumbent
	{Name: "Blue Coalition", Abbreviation: "BC", ElectoralVotes: 127, IncumbentSupport: 52.0, ChallengerSupport: 44.0, Lean: LeanLeanIncumbent, Region: "Multiple"},

	// Tossups - the battlegrounds
	{Name: "Florida", Abbreviation: "FL", ElectoralVotes: 30, IncumbentSupport: 48.0, ChallengerSupport: 48.0, Lean: LeanTossup, Region: "South"},
	{Name: "Pennsylvania", Abbreviation: "PA", ElectoralVotes: 19, IncumbentSupport: 49.0, ChallengerSupport: 47.0, Lean: LeanTossup, Region: "Northeast"},
	{Name: "Georgia", Abbreviation: "GA", ElectoralVotes: 16, IncumbentSupport: 47.0, ChallengerSupport: 49.0, Lean: LeanTossup, Region: "South"},
	{Name: "Michigan", Abbreviation: "MI", ElectoralVotes: 15, IncumbentSupport: 48.5, ChallengerSupport: 47.5, Lean: LeanTossup, Region: "Midwest"},
	{Name: "Arizona", Abbreviation: "AZ", ElectoralVotes: 11, IncumbentSupport: 47.0, ChallengerSupport: 48.0, Lean: LeanTossup, Region: "West"},
	{Name: "Wisconsin", Abbreviation: "WI", ElectoralVotes: 10, IncumbentSupport: 48.0, ChallengerSupport: 48.0, Lean: LeanTossup, Region: "Midwest"},

	// Lean Challenger
	{Name: "Ohio", Abbreviation: "OH", ElectoralVotes: 17, IncumbentSupport: 44.0, ChallengerSupport: 52.0, Lean: LeanLeanChallenger, Region: "Midwest"},
	{Name: "North Carolina", Abbreviation: "NC", ElectoralVotes: 16, IncumbentSupport: 45.0, ChallengerSupport: 51.0, Lean: LeanLeanChallenger, Region: "South"},

	// Safe Challenger
	{Name: "Texas", Abbreviation: "TX", ElectoralVotes: 40, IncumbentSupport: 42.0, ChallengerSupport: 54.0, Lean: LeanSafeChallenger, Region: "South"},
	{Name: "Red Coalition", Abbreviation: "RC", ElectoralVotes: 136, IncumbentSupport: 38.0, ChallengerSupport: 58.0, Lean: LeanSafeChallenger, Region: "Multiple"},
}

// InitialStates returns the map configuration for a new game, in the
// canonical order used everywhere a deterministic iteration is needed.
func InitialStates() []State {
	out := make([]State, len(initialStates))
	copy(out, initialStates)
	return out
}

// BattlegroundStates lists the competitive state abbreviations at game start.
func BattlegroundStates() []string {
	return []string{"FL", "PA", "GA", "MI", "AZ", "WI", "OH", "NC"}
}

// SafeIncumbentStates lists the abbreviations safe for the incumbent at game start.
func SafeIncumbentStates() []string {
	return []string{"CA", "NY", "IL", "BC"}
}

// SafeChallengerStates lists the abbreviations safe for the challenger at game start.
func SafeChallengerStates() []string {
	return []string{"TX", "RC"}
}

// TotalElectoralVotes returns the EV total of the shipped configuration (538).
func TotalElectoralVotes() int {
	total := 0
	for _, s := range initialStates {
		total += s.ElectoralVotes
	}
	return total
}
