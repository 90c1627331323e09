package main

import (
	"fmt"

	"github.com/lox/chipflow/internal/display"
	"github.com/lox/chipflow/internal/inventory"
)

// InventoryCmd shows the configured chip inventory
type InventoryCmd struct {
	Config string `kong:"default='chipflow.hcl',help='Path to HCL config file'"`
	JSON   bool   `kong:"help='Emit JSON instead of formatted output'"`
}

func (c *InventoryCmd) Run() error {
	cfg, err := inventory.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	if c.JSON {
		return printJSON(cfg.Inventory)
	}
	fmt.Println(display.Inventory(cfg.Inventory))
	return nil
}
