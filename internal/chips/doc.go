// Package chips implements the chip distribution engine: it converts a
// game's monetary parameters (player count, buy-ins, optional blinds) into
// physical chip stacks drawn from a finite shared inventory.
//
// The main entry point is Plan, which selects a chip-value multiplier, packs
// one stack per player and checks the aggregate demand against the
// inventory:
//
//	inv := chips.Inventory{1: 150, 5: 150, 25: 100, 100: 50, 500: 25, 1000: 25}
//	result, err := chips.Plan(chips.GameSpec{
//	    NumPlayers: 6,
//	    BuyIns:     []float64{100, 100, 100, 100, 100, 100},
//	}, nil, inv)
//
// Rank drives Plan across a fixed candidate set of multipliers and returns
// scored alternatives for when the primary solution has shortages.
// EvaluateCustom checks a caller-supplied per-player stack against the
// buy-in and the inventory without any search.
//
// # Architecture
//
// Plan delegates to specialized pieces:
//   - SelectMultiplier: picks a mentally-tractable chip-to-money rate
//   - Pack: greedy per-player stack construction under inventory ceilings
//   - Validate: aggregate demand vs inventory comparison
//
// Every operation is a pure synchronous computation over its inputs. The
// inventory is a snapshot borrowed from the caller and never mutated; any
// cross-request consistency policy belongs to the owner of the inventory,
// not to this package.
package chips
