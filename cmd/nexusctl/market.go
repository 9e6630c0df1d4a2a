package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "look up the latest price of one or more tickers" }
func (*quoteCmd) Usage() string {
	return `nexusctl quote <ticker>...

  Prints the price and display name the price refresh would use.
  Taiwan listings take the .TW suffix, e.g. 2330.TW.
`
}

func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fail("Error: at least one ticker is required.")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer closeApp(a)

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		price, err := a.Quoter.Price(ctx, ticker)
		if err != nil {
			fail("%s: %v", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%-10s %12.2f  %s\n", ticker, price, a.Quoter.DisplayNameOrTicker(ctx, ticker))
	}
	return status
}
