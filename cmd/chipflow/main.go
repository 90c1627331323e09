package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version      kong.VersionFlag `short:"v" help:"Show version"`
	Serve        ServeCmd         `cmd:"" help:"Run the distribution API server"`
	Plan         PlanCmd          `cmd:"" help:"Compute an optimal chip distribution"`
	Custom       CustomCmd        `cmd:"" help:"Validate a hand-picked per-player stack"`
	Alternatives AlternativesCmd  `cmd:"" help:"Rank alternative multipliers for a game"`
	Inventory    InventoryCmd     `cmd:"" help:"Show the configured chip inventory"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chipflow"),
		kong.Description("Poker chip distribution planner for home games with a finite chip set"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
