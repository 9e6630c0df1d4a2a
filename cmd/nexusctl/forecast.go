package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/request"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
)

type estimateCmd struct {
	store        string
	includeFixed bool
	apply        bool
}

func (*estimateCmd) Name() string     { return "estimate" }
func (*estimateCmd) Synopsis() string { return "explain a store's expected annual return" }
func (*estimateCmd) Usage() string {
	return `nexusctl estimate -store <id> [-include-fixed] [-apply]

  Weights each category's assumed return by its share of the portfolio.
  With -apply the result is saved as the store's return rate.
`
}

func (c *estimateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.store, "store", "", "store id")
	f.BoolVar(&c.includeFixed, "include-fixed", false, "weigh real estate and other fixed assets too")
	f.BoolVar(&c.apply, "apply", false, "save the estimate as the store's return rate")
}

func (c *estimateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.store == "" {
		fail("Error: -store is required.")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer closeApp(a)

	var est service.EstimateResult
	if c.apply {
		est, _, err = a.Services.Forecast.ApplyEstimate(ctx, c.store, c.includeFixed)
	} else {
		est, err = a.Services.Forecast.Estimate(ctx, c.store, c.includeFixed)
	}
	if err != nil {
		fail("Error estimating return: %v", err)
		return subcommands.ExitFailure
	}

	printMarkdown(estimateMarkdown(est, c.apply))
	return subcommands.ExitSuccess
}

func estimateMarkdown(est service.EstimateResult, applied bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Expected return: %s%%\n\n", strconv.FormatFloat(est.Rate, 'f', -1, 64))
	b.WriteString(est.Markdown)
	b.WriteString("\n")
	if applied {
		b.WriteString("\nSaved as the store's return rate.\n")
	}
	return b.String()
}

type projectCmd struct {
	store  string
	params request.ProjectionQuery
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project wealth against the FIRE targets up to 65" }
func (*projectCmd) Usage() string {
	return `nexusctl project -store <id> [-include-fixed] [-age n] [-savings n] [-return pct]
                 [-expense n] [-growth pct] [-inflation pct]

  Unset flags fall back to the store's settings; growth and inflation
  default to 3%.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.store, "store", "", "store id")
	f.BoolVar(&c.params.IncludeFixed, "include-fixed", false, "carry fixed assets as growing real estate")
	f.Func("age", "starting age, 0 to 120", func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		if v < 0 || v > 120 {
			return fmt.Errorf("must be between 0 and 120")
		}
		c.params.Age = &v
		return nil
	})
	optionalFloat(f, "savings", "annual savings", &c.params.Savings)
	optionalFloat(f, "return", "annual return on investments, percent", &c.params.ReturnRate)
	optionalFloat(f, "expense", "target annual expense", &c.params.Expense)
	optionalFloat(f, "growth", "annual real estate growth, percent", &c.params.RealEstateGrowth)
	optionalFloat(f, "inflation", "annual inflation, percent", &c.params.Inflation)
}

func optionalFloat(f *flag.FlagSet, name, usage string, dst **float64) {
	f.Func(name, usage, func(s string) error {
		v, err := request.ParseNumber(s)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	})
}

func (c *projectCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.store == "" {
		fail("Error: -store is required.")
		return subcommands.ExitUsageError
	}
	if err := c.params.Validate(); err != nil {
		fail("Error: %v", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer closeApp(a)

	res, err := a.Services.Forecast.Project(ctx, c.store, service.ProjectionParams(c.params))
	if err != nil {
		fail("Error projecting: %v", err)
		return subcommands.ExitFailure
	}

	printMarkdown(projectionMarkdown(res))
	return subcommands.ExitSuccess
}

func projectionMarkdown(res service.ProjectionResult) string {
	var b strings.Builder
	in := res.Input

	b.WriteString("# FIRE projection\n\n")
	fmt.Fprintf(&b, "Starting at age %d with %s invested, saving %s a year at %s%%.\n\n",
		in.Age, service.FormatTWD(in.Investable, false), service.FormatTWD(in.AnnualSavings, false),
		strconv.FormatFloat(in.ReturnRate, 'f', -1, 64))
	if res.FIAge != nil {
		fmt.Fprintf(&b, "Financial independence at **%d**.\n\n", *res.FIAge)
	} else {
		b.WriteString("Financial independence is not reached by 65.\n\n")
	}

	b.WriteString("| Age | Wealth | Target |")
	for _, t := range res.Tiers {
		fmt.Fprintf(&b, " %s |", t.Name)
	}
	b.WriteString("\n|---|---:|---:|")
	for range res.Tiers {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for i, age := range res.Ages {
		fmt.Fprintf(&b, "| %d | %s | %s |", age,
			service.FormatTWD(res.Wealth[i], false), service.FormatTWD(res.Custom[i], false))
		for _, t := range res.Tiers {
			fmt.Fprintf(&b, " %s |", service.FormatTWD(t.Target[i], false))
		}
		b.WriteString("\n")
	}
	return b.String()
}
