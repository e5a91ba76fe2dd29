// Package main is a headless batch simulator: it plays full AI-vs-AI
// elections without any network or storage layer. Useful for balance
// tuning and for eyeballing the spread of outcomes under many seeds.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mcortes/CampaignManager2026/server/internal/ai"
	"github.com/mcortes/CampaignManager2026/server/internal/domain/campaign"
	"github.com/mcortes/CampaignManager2026/server/internal/engine"
	"github.com/mcortes/CampaignManager2026/server/internal/random"
)

func main() {
	games := flag.Int("games", 100, "number of full elections to simulate")
	seed := flag.Int64("seed", 0, "base seed; 0 draws a random one")
	verbose := flag.Bool("verbose", false, "print every game's result")
	flag.Parse()

	baseSeed := *seed
	if baseSeed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to draw seed:", err)
			os.Exit(1)
		}
		baseSeed = s
	}
	fmt.Printf("Simulating %d elections, base seed %d\n", *games, baseSeed)

	var incumbentWins, challengerWins, landslides int
	var totalMargin int

	for i := 0; i < *games; i++ {
		result := playOne(baseSeed + int64(i))

		switch result.Winner {
		case engine.WinnerIncumbent:
			incumbentWins++
		case engine.WinnerChallenger:
			challengerWins++
		}
		if result.IsLandslide {
			landslides++
		}
		margin := result.Margin
		if margin < 0 {
			margin = -margin
		}
		totalMargin += margin

		if *verbose {
			fmt.Printf("  game %3d: %-12s %d-%d (popular %.1f-%.1f)\n",
				i+1, result.Winner, result.IncumbentEVs, result.ChallengerEVs,
				result.IncumbentPopular, result.ChallengerPopular)
		}
	}

	fmt.Println("---")
	fmt.Printf("Incumbent wins:  %d (%.1f%%)\n", incumbentWins, pct(incumbentWins, *games))
	fmt.Printf("Challenger wins: %d (%.1f%%)\n", challengerWins, pct(challengerWins, *games))
	fmt.Printf("Landslides:      %d\n", landslides)
	fmt.Printf("Average margin:  %.1f EVs\n", float64(totalMargin)/float64(*games))
}

// playOne runs a complete 20-turn election with the scripted incumbent
// against the weighted-strategy challenger and returns the outcome.
func playOne(seed int64) engine.ElectionResult {
	eng := engine.NewGameEngine()
	eng.Seed(seed)

	challenger := ai.NewOpponent()
	challenger.Seed(seed)

	eng.NewGame("Incumbent", "The Challenger")

	for !eng.IsGameOver() {
		gs, err := eng.StartTurn()
		if err != nil {
			break
		}

		// Scripted incumbent: keep the war chest healthy, otherwise
		// rally in the closest states.
		playerAction := campaign.ActionRally
		if gs.Incumbent.Funds < campaign.GetActionDefinition(campaign.ActionRally).Cost {
			playerAction = campaign.ActionFundraiser
		}
		if _, _, err := eng.ExecutePlayerAction(playerAction, nil); err != nil {
			break
		}

		state := eng.State()
		aiAction, targets := challenger.ChooseAction(*state)
		if _, _, err := eng.ExecuteAIAction(aiAction, targets); err != nil {
			break
		}

		if _, err := eng.EndTurn(); err != nil {
			break
		}
	}

	result, _ := eng.ElectionResult()
	return result
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
