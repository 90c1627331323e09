package chips

// Validate compares aggregate chip demand against the inventory snapshot.
// It returns whether every denomination's demand is covered, and the
// per-denomination deficit for those that are not. The shortage map is nil
// when the demand is feasible.
func Validate(demand ChipSet, inv Inventory) (bool, ChipSet) {
	shortage := ChipSet{}
	for d, needed := range demand {
		if available := inv[d]; needed > available {
			shortage[d] = needed - available
		}
	}
	if len(shortage) == 0 {
		return true, nil
	}
	return false, shortage
}
