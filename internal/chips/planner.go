package chips

// defaultBBStackDepth drives blind derivation when the caller supplies no
// blinds at all: the big blind is sized so average stacks start ~125 BB
// deep.
const defaultBBStackDepth = 125

// GameSpec describes one game's monetary parameters. SmallBlind and
// BigBlind are optional; Plan derives missing blinds before selecting a
// multiplier.
type GameSpec struct {
	NumPlayers int
	BuyIns     []float64
	SmallBlind *float64
	BigBlind   *float64
}

// TotalBuyIn returns the sum of all buy-ins.
func (s GameSpec) TotalBuyIn() float64 {
	total := 0.0
	for _, b := range s.BuyIns {
		total += b
	}
	return total
}

// Info is the metrics block attached to every Result. Blind-derived fields
// are nil when no blind context exists; the value-comparison fields are set
// only on results produced by EvaluateCustom.
type Info struct {
	BBInChips              *float64 `json:"bb_in_chips"`
	SBInChips              *float64 `json:"sb_in_chips"`
	ChipsPerPlayer         float64  `json:"chips_per_player"`
	BBPerPlayer            *float64 `json:"bb_per_player"`
	TotalBuyIn             float64  `json:"total_buy_in"`
	NumPlayers             int      `json:"num_players"`
	ActualValuePerPlayer   *float64 `json:"actual_value_per_player,omitempty"`
	ExpectedValuePerPlayer *float64 `json:"expected_value_per_player,omitempty"`
	ValueDifference        *float64 `json:"value_difference,omitempty"`
}

// Result is a complete chip distribution for one game. It is created fresh
// per computation and never mutated after return.
type Result struct {
	Multiplier float64   `json:"multiplier"`
	PerPlayer  []ChipSet `json:"distribution_per_player"`
	TotalChips ChipSet   `json:"total_chips_used"`
	Feasible   bool      `json:"is_feasible"`
	Shortage   ChipSet   `json:"shortage,omitempty"`
	Info       Info      `json:"info"`
}

// validateSpec applies the core's input checks shared by Plan and
// EvaluateCustom.
func validateSpec(spec GameSpec) error {
	if len(spec.BuyIns) != spec.NumPlayers {
		return &InputMismatchError{NumPlayers: spec.NumPlayers, NumBuyIns: len(spec.BuyIns)}
	}
	for _, b := range spec.BuyIns {
		if b <= 0 {
			return &InvalidParameterError{Param: "buy_ins", Reason: "all buy-ins must be positive"}
		}
	}
	if spec.SmallBlind != nil && spec.BigBlind != nil && *spec.BigBlind <= *spec.SmallBlind {
		return &InvalidParameterError{Param: "big_blind", Reason: "big blind must be greater than small blind"}
	}
	return nil
}

// deriveBlinds fills in missing blinds. With neither given, the big blind
// targets defaultBBStackDepth-deep average stacks; with one given, the
// other follows the standard 1:2 ratio.
func deriveBlinds(spec GameSpec, avgBuyIn float64) (smallBlind, bigBlind float64) {
	switch {
	case spec.BigBlind == nil && spec.SmallBlind == nil:
		bigBlind = avgBuyIn / defaultBBStackDepth
		smallBlind = bigBlind / 2
	case spec.BigBlind == nil:
		smallBlind = *spec.SmallBlind
		bigBlind = smallBlind * 2
	case spec.SmallBlind == nil:
		bigBlind = *spec.BigBlind
		smallBlind = bigBlind / 2
	default:
		smallBlind = *spec.SmallBlind
		bigBlind = *spec.BigBlind
	}
	return smallBlind, bigBlind
}

// Plan computes a full-game chip distribution: it derives any missing
// blinds, picks a multiplier (or uses forced verbatim, bypassing the
// search entirely), packs one stack per buy-in and checks the aggregate
// demand against the inventory snapshot.
//
// A result with shortages is data, not an error: Plan fails only on
// malformed input (InputMismatchError, InvalidParameterError).
func Plan(spec GameSpec, forced *float64, inv Inventory) (*Result, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	if forced != nil && *forced <= 0 {
		return nil, &InvalidParameterError{Param: "multiplier", Reason: "multiplier must be positive"}
	}

	denoms := inv.Denominations()
	if len(denoms) == 0 {
		return nil, &InvalidParameterError{Param: "inventory", Reason: "inventory has no denominations"}
	}

	totalBuyIn := spec.TotalBuyIn()
	avgBuyIn := totalBuyIn / float64(spec.NumPlayers)
	_, bigBlind := deriveBlinds(spec, avgBuyIn)

	var multiplier float64
	var selInfo SelectorInfo
	if forced != nil {
		multiplier = *forced
		chipsPerPlayer := avgBuyIn / multiplier
		bbInChips := bigBlind / multiplier
		sbInChips := bbInChips / 2
		bbPerPlayer := chipsPerPlayer / bbInChips
		selInfo = SelectorInfo{
			BBInChips:      &bbInChips,
			SBInChips:      &sbInChips,
			ChipsPerPlayer: chipsPerPlayer,
			BBPerPlayer:    &bbPerPlayer,
		}
	} else {
		multiplier, selInfo = SelectMultiplier(totalBuyIn, spec.NumPlayers, &bigBlind, TargetBBStack, denoms)
	}

	perPlayer := make([]ChipSet, 0, spec.NumPlayers)
	for _, buyIn := range spec.BuyIns {
		chipsNeeded := buyIn / multiplier
		perPlayer = append(perPlayer, Pack(chipsNeeded, denoms, inv, spec.NumPlayers))
	}

	demand := ChipSet{}
	for _, stack := range perPlayer {
		for d, count := range stack {
			demand[d] += count
		}
	}

	feasible, shortage := Validate(demand, inv)

	return &Result{
		Multiplier: multiplier,
		PerPlayer:  perPlayer,
		TotalChips: demand,
		Feasible:   feasible,
		Shortage:   shortage,
		Info: Info{
			BBInChips:      selInfo.BBInChips,
			SBInChips:      selInfo.SBInChips,
			ChipsPerPlayer: selInfo.ChipsPerPlayer,
			BBPerPlayer:    selInfo.BBPerPlayer,
			TotalBuyIn:     totalBuyIn,
			NumPlayers:     spec.NumPlayers,
		},
	}, nil
}

// EvaluateCustom checks a caller-supplied stack against the buy-in and the
// inventory. Every player receives an identical copy of chipsPerPlayer; no
// packing or search happens. The value check assumes uniform buy-ins and
// compares against the first one, reporting the signed difference in the
// info block.
//
// Unlike Plan, missing blinds are not derived here: without a big blind the
// blind-derived info fields stay nil.
func EvaluateCustom(spec GameSpec, multiplier float64, chipsPerPlayer ChipSet, inv Inventory) (*Result, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	if multiplier <= 0 {
		return nil, &InvalidParameterError{Param: "multiplier", Reason: "multiplier must be positive"}
	}

	stackValue := float64(chipsPerPlayer.Value())
	actualValue := stackValue * multiplier
	expectedValue := 0.0
	if len(spec.BuyIns) > 0 {
		expectedValue = spec.BuyIns[0]
	}
	difference := actualValue - expectedValue

	perPlayer := make([]ChipSet, 0, spec.NumPlayers)
	demand := ChipSet{}
	for i := 0; i < spec.NumPlayers; i++ {
		perPlayer = append(perPlayer, chipsPerPlayer.Clone())
	}
	for d, count := range chipsPerPlayer {
		demand[d] = count * spec.NumPlayers
	}

	feasible, shortage := Validate(demand, inv)

	info := Info{
		ChipsPerPlayer:         stackValue,
		TotalBuyIn:             spec.TotalBuyIn(),
		NumPlayers:             spec.NumPlayers,
		ActualValuePerPlayer:   &actualValue,
		ExpectedValuePerPlayer: &expectedValue,
		ValueDifference:        &difference,
	}
	if spec.BigBlind != nil {
		bbInChips := *spec.BigBlind / multiplier
		sbInChips := bbInChips / 2
		bbPerPlayer := stackValue / bbInChips
		info.BBInChips = &bbInChips
		info.SBInChips = &sbInChips
		info.BBPerPlayer = &bbPerPlayer
	}

	return &Result{
		Multiplier: multiplier,
		PerPlayer:  perPlayer,
		TotalChips: demand,
		Feasible:   feasible,
		Shortage:   shortage,
		Info:       info,
	}, nil
}
