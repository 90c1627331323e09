package chips

import "math"

// candidateMultipliers is the fixed search space for the chip-value
// multiplier (money per chip unit).
var candidateMultipliers = []float64{
	0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000,
}

// preferredBBInChips are big-blind sizes, expressed in chip units, that are
// easy to work with at the table.
var preferredBBInChips = []float64{5, 10, 20, 25, 50, 100, 200, 500}

const (
	// TargetBBStack is the starting stack depth, in big blinds, the
	// selector aims for.
	TargetBBStack = 150

	// The smallest chip should be worth 1-5% of the big blind. Outside
	// that window a flat penalty is added to the candidate's score.
	minChipToBBRatio = 0.01
	maxChipToBBRatio = 0.05
	ratioPenalty     = 100

	// bbRoundTolerance is how close bb-in-chips must land to a preferred
	// value for a candidate to be considered at all.
	bbRoundTolerance = 0.01

	// fallbackChipFraction targets the smallest denomination at ~1% of
	// the average buy-in when no blind context is available.
	fallbackChipFraction = 0.01
)

// SelectorInfo carries the stack metrics behind a selected multiplier.
// The blind-derived fields are nil when the selection was made without a
// big blind.
type SelectorInfo struct {
	BBInChips      *float64
	SBInChips      *float64
	ChipsPerPlayer float64
	BBPerPlayer    *float64
}

// SelectMultiplier picks the chip-value multiplier for a game. With a big
// blind it searches the candidate list for a multiplier that makes the big
// blind a round number of chips while landing stacks near targetBBStack;
// without one (or when no candidate qualifies) it falls back to sizing the
// smallest denomination at ~1% of the average buy-in. It always returns a
// multiplier.
//
// Candidates are scanned in ascending order and only a strictly better
// score displaces the incumbent, so ties resolve to the smaller multiplier.
// Callers relying on deterministic output depend on that ordering.
func SelectMultiplier(totalBuyIn float64, numPlayers int, bigBlind *float64, targetBBStack float64, denoms []Denomination) (float64, SelectorInfo) {
	minDenom := float64(denoms[0])
	avgBuyIn := totalBuyIn / float64(numPlayers)

	if bigBlind != nil {
		bb := *bigBlind
		best := 0.0
		bestScore := math.Inf(1)
		found := false

		for _, m := range candidateMultipliers {
			// Smallest chip must stay usable relative to the blinds.
			if minDenom*m > bb/4 {
				continue
			}
			bbInChips := bb / m
			if !nearPreferredBB(bbInChips) {
				continue
			}

			chipsPerPlayer := avgBuyIn / m
			bbPerPlayer := chipsPerPlayer / bbInChips

			score := math.Abs(bbPerPlayer - targetBBStack)
			ratio := minDenom * m / bb
			if ratio < minChipToBBRatio || ratio > maxChipToBBRatio {
				score += ratioPenalty
			}

			if score < bestScore {
				bestScore = score
				best = m
				found = true
			}
		}

		if found {
			bbInChips := bb / best
			sbInChips := bbInChips / 2
			chipsPerPlayer := avgBuyIn / best
			bbPerPlayer := chipsPerPlayer / bbInChips
			return best, SelectorInfo{
				BBInChips:      &bbInChips,
				SBInChips:      &sbInChips,
				ChipsPerPlayer: chipsPerPlayer,
				BBPerPlayer:    &bbPerPlayer,
			}
		}
	}

	// No blind context, or no candidate made the big blind round: size the
	// smallest chip at fallbackChipFraction of the average buy-in instead.
	targetMultiplier := avgBuyIn * fallbackChipFraction / minDenom
	closest := candidateMultipliers[0]
	bestDiff := math.Abs(closest - targetMultiplier)
	for _, m := range candidateMultipliers[1:] {
		if diff := math.Abs(m - targetMultiplier); diff < bestDiff {
			bestDiff = diff
			closest = m
		}
	}

	return closest, SelectorInfo{ChipsPerPlayer: avgBuyIn / closest}
}

// nearPreferredBB reports whether bbInChips is within bbRoundTolerance of a
// preferred round value.
func nearPreferredBB(bbInChips float64) bool {
	for _, preferred := range preferredBBInChips {
		if math.Abs(bbInChips-preferred) < bbRoundTolerance {
			return true
		}
	}
	return false
}

// isRoundBB reports whether bbInChips lands exactly on a preferred value.
// The ranker uses this stricter check when awarding its round-blind bonus.
func isRoundBB(bbInChips float64) bool {
	for _, preferred := range preferredBBInChips {
		if bbInChips == preferred {
			return true
		}
	}
	return false
}
