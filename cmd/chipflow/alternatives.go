package main

import (
	"fmt"

	"github.com/lox/chipflow/internal/chips"
	"github.com/lox/chipflow/internal/display"
)

// AlternativesCmd ranks alternative multipliers for one game
type AlternativesCmd struct {
	GameArgs
	Max int `kong:"default='5',help='Maximum number of alternatives to show'"`
}

func (c *AlternativesCmd) Run() error {
	inv, err := c.LoadInventory()
	if err != nil {
		return err
	}

	ranked := chips.Rank(c.Spec(), inv, c.Max)

	if c.JSON {
		return printJSON(ranked)
	}
	fmt.Println(display.Alternatives(ranked))
	return nil
}
