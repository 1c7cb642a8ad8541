package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play against the computer in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Run the WebSocket game server"`
	Simulate SimulateCmd      `cmd:"" help:"Run computer-vs-computer games"`
	Stats    StatsCmd         `cmd:"" help:"Show recorded win/loss statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sevenhandpoker"),
		kong.Description("Seven Hand Poker: a two-player card game of seven poker hands"),
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
