package server

import (
	"fmt"

	"github.com/lox/chipflow/internal/chips"
)

// Request-scoped limits enforced before the engine is invoked. The core
// assumes a collaborator has rejected out-of-range input; this layer is
// that collaborator.
const (
	maxPlayers             = 20
	defaultMaxAlternatives = 5
	maxMaxAlternatives     = 10
)

// DistributeRequest asks for an optimal distribution, optionally with
// ranked alternatives.
type DistributeRequest struct {
	NumPlayers          int       `json:"num_players"`
	BuyIns              []float64 `json:"buy_ins"`
	SmallBlind          *float64  `json:"small_blind,omitempty"`
	BigBlind            *float64  `json:"big_blind,omitempty"`
	ForceMultiplier     *float64  `json:"force_multiplier,omitempty"`
	IncludeAlternatives *bool     `json:"include_alternatives,omitempty"`
	MaxAlternatives     int       `json:"max_alternatives,omitempty"`
}

// Validate applies the request-level checks the engine expects its caller
// to have made.
func (r *DistributeRequest) Validate() error {
	if err := validateGameParams(r.NumPlayers, r.BuyIns, r.SmallBlind, r.BigBlind); err != nil {
		return err
	}
	if r.ForceMultiplier != nil && *r.ForceMultiplier <= 0 {
		return fmt.Errorf("force_multiplier must be positive")
	}
	if r.MaxAlternatives != 0 && (r.MaxAlternatives < 1 || r.MaxAlternatives > maxMaxAlternatives) {
		return fmt.Errorf("max_alternatives must be between 1 and %d", maxMaxAlternatives)
	}
	return nil
}

// Spec converts the request into the engine's GameSpec.
func (r *DistributeRequest) Spec() chips.GameSpec {
	return chips.GameSpec{
		NumPlayers: r.NumPlayers,
		BuyIns:     r.BuyIns,
		SmallBlind: r.SmallBlind,
		BigBlind:   r.BigBlind,
	}
}

// includeAlternatives defaults to true when the field is omitted.
func (r *DistributeRequest) includeAlternatives() bool {
	if r.IncludeAlternatives == nil {
		return true
	}
	return *r.IncludeAlternatives
}

func (r *DistributeRequest) maxAlternatives() int {
	if r.MaxAlternatives == 0 {
		return defaultMaxAlternatives
	}
	return r.MaxAlternatives
}

// CustomRequest asks for validation of a caller-supplied per-player stack.
type CustomRequest struct {
	NumPlayers     int           `json:"num_players"`
	BuyIns         []float64     `json:"buy_ins"`
	Multiplier     float64       `json:"multiplier"`
	ChipsPerPlayer chips.ChipSet `json:"chips_per_player"`
	SmallBlind     *float64      `json:"small_blind,omitempty"`
	BigBlind       *float64      `json:"big_blind,omitempty"`
}

// Validate applies the request-level checks.
func (r *CustomRequest) Validate() error {
	if err := validateGameParams(r.NumPlayers, r.BuyIns, r.SmallBlind, r.BigBlind); err != nil {
		return err
	}
	if r.Multiplier <= 0 {
		return fmt.Errorf("multiplier must be positive")
	}
	if len(r.ChipsPerPlayer) == 0 {
		return fmt.Errorf("chips_per_player must not be empty")
	}
	for d, count := range r.ChipsPerPlayer {
		if !chips.IsStandardDenomination(d) {
			return fmt.Errorf("unknown chip denomination: %d", d)
		}
		if count < 0 {
			return fmt.Errorf("chip count for denomination %d cannot be negative", d)
		}
	}
	return nil
}

// Spec converts the request into the engine's GameSpec.
func (r *CustomRequest) Spec() chips.GameSpec {
	return chips.GameSpec{
		NumPlayers: r.NumPlayers,
		BuyIns:     r.BuyIns,
		SmallBlind: r.SmallBlind,
		BigBlind:   r.BigBlind,
	}
}

func validateGameParams(numPlayers int, buyIns []float64, smallBlind, bigBlind *float64) error {
	if numPlayers < 1 || numPlayers > maxPlayers {
		return fmt.Errorf("num_players must be between 1 and %d", maxPlayers)
	}
	if len(buyIns) != numPlayers {
		return fmt.Errorf("length of buy_ins (%d) must match num_players (%d)", len(buyIns), numPlayers)
	}
	for _, b := range buyIns {
		if b <= 0 {
			return fmt.Errorf("all buy-ins must be positive")
		}
	}
	if smallBlind != nil && *smallBlind <= 0 {
		return fmt.Errorf("small_blind must be positive")
	}
	if bigBlind != nil && *bigBlind <= 0 {
		return fmt.Errorf("big_blind must be positive")
	}
	if smallBlind != nil && bigBlind != nil && *bigBlind <= *smallBlind {
		return fmt.Errorf("big_blind must be greater than small_blind")
	}
	return nil
}

// DistributeResponse carries the optimal result, any requested
// alternatives, and a human-readable recommendation.
type DistributeResponse struct {
	Optimal        *chips.Result   `json:"optimal"`
	Alternatives   []*chips.Result `json:"alternatives"`
	Recommendation string          `json:"recommendation"`
}

// InventoryResponse reports the current chip counts and their total worth.
type InventoryResponse struct {
	Inventory  chips.Inventory `json:"inventory"`
	TotalValue int             `json:"total_value"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the HTTP error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
