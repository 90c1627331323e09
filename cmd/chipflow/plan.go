package main

import (
	"fmt"

	"github.com/lox/chipflow/internal/chips"
	"github.com/lox/chipflow/internal/display"
)

// PlanCmd computes an optimal distribution for one game
type PlanCmd struct {
	GameArgs
	Multiplier *float64 `kong:"help='Force a specific multiplier instead of searching'"`
}

func (c *PlanCmd) Run() error {
	inv, err := c.LoadInventory()
	if err != nil {
		return err
	}

	result, err := chips.Plan(c.Spec(), c.Multiplier, inv)
	if err != nil {
		return err
	}

	if c.JSON {
		return printJSON(result)
	}
	fmt.Println(display.Result(result, "Optimal Distribution"))
	return nil
}
