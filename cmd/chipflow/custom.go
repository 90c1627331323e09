package main

import (
	"fmt"

	"github.com/lox/chipflow/internal/chips"
	"github.com/lox/chipflow/internal/display"
)

// CustomCmd validates a hand-picked per-player stack against the buy-in
// and the inventory
type CustomCmd struct {
	GameArgs
	Multiplier float64     `kong:"required,help='Chip value multiplier'"`
	Chips      map[int]int `kong:"required,help='Per-player chip counts as denomination=count pairs'"`
}

func (c *CustomCmd) Run() error {
	inv, err := c.LoadInventory()
	if err != nil {
		return err
	}

	stack := chips.ChipSet{}
	for d, count := range c.Chips {
		stack[chips.Denomination(d)] = count
	}

	result, err := chips.EvaluateCustom(c.Spec(), c.Multiplier, stack, inv)
	if err != nil {
		return err
	}

	if c.JSON {
		return printJSON(result)
	}
	fmt.Println(display.Result(result, "Custom Distribution"))
	return nil
}
