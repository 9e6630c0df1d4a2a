// Command nexusctl administers a Nexus Wealth database from the terminal:
// it creates users, imports files and prints forecasts.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range commands {
		commander.Register(c.cmd, c.group)
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

type registration struct {
	cmd   subcommands.Command
	group string
}

var commands = []registration{
	{&userAddCmd{}, "users"},
	{&importCmd{}, "data"},
	{&snapshotCmd{}, "data"},
	{&estimateCmd{}, "forecast"},
	{&projectCmd{}, "forecast"},
	{&quoteCmd{}, "market"},
}
