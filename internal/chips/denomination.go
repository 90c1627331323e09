package chips

import "sort"

// Denomination is a chip's printed face value.
type Denomination int

// StandardDenominations is the closed set of face values the engine works
// with. Inventories are restricted to these keys.
var StandardDenominations = []Denomination{1, 5, 25, 100, 500, 1000}

// IsStandardDenomination reports whether d belongs to the closed set.
func IsStandardDenomination(d Denomination) bool {
	for _, s := range StandardDenominations {
		if d == s {
			return true
		}
	}
	return false
}

// ChipSet maps denomination to chip count. It represents a single player's
// stack, an aggregate demand across players, or a per-denomination shortage.
type ChipSet map[Denomination]int

// TotalChips returns the number of physical chips in the set.
func (s ChipSet) TotalChips() int {
	total := 0
	for _, count := range s {
		total += count
	}
	return total
}

// Value returns the set's worth in chip units (face value times count).
func (s ChipSet) Value() int {
	value := 0
	for d, count := range s {
		value += int(d) * count
	}
	return value
}

// Clone returns an independent copy of the set.
func (s ChipSet) Clone() ChipSet {
	out := make(ChipSet, len(s))
	for d, count := range s {
		out[d] = count
	}
	return out
}

// Inventory maps denomination to count-on-hand. The engine treats it as an
// immutable snapshot for the duration of one computation.
type Inventory map[Denomination]int

// Denominations returns the inventory's face values in ascending order.
func (inv Inventory) Denominations() []Denomination {
	denoms := make([]Denomination, 0, len(inv))
	for d := range inv {
		denoms = append(denoms, d)
	}
	sort.Slice(denoms, func(i, j int) bool { return denoms[i] < denoms[j] })
	return denoms
}

// TotalValue returns the monetary worth of the whole inventory in chip
// units (face value times count, summed over all denominations).
func (inv Inventory) TotalValue() int {
	value := 0
	for d, count := range inv {
		value += int(d) * count
	}
	return value
}

// Clone returns an independent copy of the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for d, count := range inv {
		out[d] = count
	}
	return out
}
