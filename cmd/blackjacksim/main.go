package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Simulate   SimulateCmd      `cmd:"" help:"Run blackjack session simulations"`
	Strategies StrategiesCmd    `cmd:"" help:"List available playing strategies"`
	Serve      ServeCmd         `cmd:"" help:"Run the simulation HTTP server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjacksim"),
		kong.Description("Stochastic blackjack simulator with Hi-Lo card counting"),
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
