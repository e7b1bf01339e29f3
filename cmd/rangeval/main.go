package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Run a preflop range-vs-range EV simulation"`
	Equity  EquityCmd        `cmd:"" help:"Estimate showdown equity for a single matchup"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rangeval"),
		kong.Description("Monte Carlo preflop EV estimation for strategy ranges"),
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
