package main

import (
	"encoding/json"
	"os"

	"github.com/lox/chipflow/internal/chips"
	"github.com/lox/chipflow/internal/inventory"
)

// GameArgs holds the game parameters shared by the one-shot planning
// commands.
type GameArgs struct {
	Config     string    `kong:"default='chipflow.hcl',help='Path to HCL config file'"`
	Players    int       `kong:"required,help='Number of players'"`
	BuyIn      []float64 `kong:"name='buy-in',required,help='Buy-in amounts; a single value applies to every player'"`
	SmallBlind *float64  `kong:"help='Small blind in real money (optional)'"`
	BigBlind   *float64  `kong:"help='Big blind in real money (optional)'"`
	JSON       bool      `kong:"help='Emit JSON instead of formatted output'"`
}

// Spec expands the buy-in list and builds the engine's game description.
// A single buy-in value is repeated for every player.
func (g *GameArgs) Spec() chips.GameSpec {
	buyIns := g.BuyIn
	if len(buyIns) == 1 && g.Players > 1 {
		buyIns = make([]float64, g.Players)
		for i := range buyIns {
			buyIns[i] = g.BuyIn[0]
		}
	}
	return chips.GameSpec{
		NumPlayers: g.Players,
		BuyIns:     buyIns,
		SmallBlind: g.SmallBlind,
		BigBlind:   g.BigBlind,
	}
}

// LoadInventory reads the chip inventory from the config file.
func (g *GameArgs) LoadInventory() (chips.Inventory, error) {
	cfg, err := inventory.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	return cfg.Inventory, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
