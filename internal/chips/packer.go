package chips

import "math"

const (
	// topOffLimit bounds how many extra chips of one denomination the
	// second pass may add to consume leftover value.
	topOffLimit = 10

	// singleDenomCap replaces the positional caps when the game is played
	// with a single denomination.
	singleDenomCap = 100
)

// maxChipsAt returns the per-player cap for the denomination at the given
// ascending position. Smaller chips get higher caps so stacks stay playable
// without drowning players in change.
func maxChipsAt(position, total int) int {
	if total == 1 {
		return singleDenomCap
	}
	switch {
	case position == 0:
		return 30
	case position == 1:
		return 25
	case position == 2:
		return 20
	case position == total-1:
		return 15
	default:
		return 18
	}
}

// Pack builds one player's stack worth chipsNeeded chip units from the
// given ascending denominations. A nil inventory means unconstrained;
// otherwise each denomination is capped at its per-player share of the
// snapshot (count divided by numPlayers).
//
// The walk goes smallest-denomination first, the opposite of classic
// coin change: low denominations are the ones players actually bet with,
// so they are filled up to their caps before larger chips cover the rest.
// Three passes run in order: the capped primary fill, a top-off of at most
// topOffLimit extra chips per denomination, and a final ceil-rounding with
// the smallest denomination.
//
// Pack never fails. When the inventory runs out before chipsNeeded is
// reached it returns the best stack it could assemble and drops the
// residual value silently; callers detect the aggregate effect through
// Validate, not through Pack itself.
func Pack(chipsNeeded float64, denoms []Denomination, inv Inventory, numPlayers int) ChipSet {
	set := ChipSet{}
	remaining := chipsNeeded

	for i, d := range denoms {
		if remaining < float64(d) {
			continue
		}
		perPlayer := math.MaxInt
		if inv != nil {
			perPlayer = inv[d] / numPlayers
		}
		count := min(maxChipsAt(i, len(denoms)), int(remaining/float64(d)), perPlayer)
		if count > 0 {
			set[d] = count
			remaining -= float64(count * int(d))
		}
	}

	if remaining > 0 {
		for _, d := range denoms {
			if remaining < float64(d) {
				continue
			}
			perPlayer := math.MaxInt
			if inv != nil {
				perPlayer = (inv[d] - set[d]*numPlayers) / numPlayers
			}
			additional := min(topOffLimit, int(remaining/float64(d)), perPlayer)
			if additional > 0 {
				set[d] += additional
				remaining -= float64(additional * int(d))
				if remaining < float64(d) {
					break
				}
			}
		}
	}

	if remaining > 0 && len(denoms) > 0 {
		smallest := denoms[0]
		perPlayer := math.MaxInt
		if inv != nil {
			perPlayer = (inv[smallest] - set[smallest]*numPlayers) / numPlayers
		}
		additional := min(int(math.Ceil(remaining/float64(smallest))), perPlayer)
		if additional > 0 {
			set[smallest] += additional
		}
	}

	return set
}
