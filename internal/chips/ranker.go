package chips

import (
	"math"
	"sort"
)

// alternativeMultipliers is the candidate set the ranker explores. Larger
// multipliers than 10 never survive the chip-count filter for realistic
// buy-ins, so the list stops there.
var alternativeMultipliers = []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10}

// Ranking policy weights. Their relative magnitudes matter: the
// feasibility bonus dominates everything else, so a feasible plan always
// outranks one with shortages.
const (
	feasibilityBonus = 1000
	chipCountWeight  = 0.01
	roundBBBonus     = 50

	// Candidates whose per-player chip count falls outside this window
	// are skipped before planning; stacks below or above it are
	// impractical to play.
	minChipsPerPlayer = 50
	maxChipsPerPlayer = 10000
)

// Rank drives Plan across the alternative multiplier candidates and
// returns the results best first, truncated to maxAlternatives. Candidates
// that fail to plan are skipped; an empty slice means no alternatives were
// available, not an error. A non-positive maxAlternatives yields an empty
// slice.
func Rank(spec GameSpec, inv Inventory, maxAlternatives int) []*Result {
	if maxAlternatives <= 0 {
		return nil
	}
	avgBuyIn := spec.TotalBuyIn() / float64(len(spec.BuyIns))

	type scoredResult struct {
		result *Result
		score  float64
	}
	var results []scoredResult

	for _, m := range alternativeMultipliers {
		if chipsPerPlayer := avgBuyIn / m; chipsPerPlayer < minChipsPerPlayer || chipsPerPlayer > maxChipsPerPlayer {
			continue
		}

		forced := m
		result, err := Plan(spec, &forced, inv)
		if err != nil {
			continue
		}

		results = append(results, scoredResult{result, scoreResult(result)})
	}

	// Stable sort keeps the original candidate order on exact ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > maxAlternatives {
		results = results[:maxAlternatives]
	}

	ranked := make([]*Result, len(results))
	for i, r := range results {
		ranked[i] = r.result
	}
	return ranked
}

// scoreResult scores one candidate plan; higher is better.
func scoreResult(r *Result) float64 {
	score := 0.0

	if r.Feasible {
		score += feasibilityBonus
	} else {
		for _, deficit := range r.Shortage {
			score -= float64(deficit)
		}
	}

	if r.Info.BBPerPlayer != nil {
		score -= math.Abs(*r.Info.BBPerPlayer - TargetBBStack)
	}

	score -= float64(r.TotalChips.TotalChips()) * chipCountWeight

	if r.Info.BBInChips != nil && isRoundBB(*r.Info.BBInChips) {
		score += roundBBBonus
	}

	return score
}
