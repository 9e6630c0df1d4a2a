package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/importer"
)

type importCmd struct {
	store string
	kind  string
	file  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace a table with the rows of a csv or xlsx file" }
func (*importCmd) Usage() string {
	return `nexusctl import -store <id> -kind <us_stock|tw_stock|fixed_asset|liability> -file <path>

  Parses the file, maps its columns onto the chosen table and replaces the
  table's contents. A file missing a mandatory column changes nothing.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.store, "store", "", "store id")
	f.StringVar(&c.kind, "kind", "", "destination table")
	f.StringVar(&c.file, "file", "", "csv or xlsx file to import")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.store == "" || c.file == "" {
		fail("Error: -store and -file are required.")
		return subcommands.ExitUsageError
	}
	kind, err := importer.ParseKind(c.kind)
	if err != nil {
		fail("Error: %v %q", err, c.kind)
		return subcommands.ExitUsageError
	}

	f, err := os.Open(c.file)
	if err != nil {
		fail("Error opening %s: %v", c.file, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer closeApp(a)

	got, err := a.Services.Imports.Import(ctx, c.store, kind, filepath.Base(c.file), f)
	if err != nil {
		fail("Error importing %s: %v", c.file, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("imported %d %s rows from %s\n", got.Len(), kind, c.file)
	return subcommands.ExitSuccess
}

type snapshotCmd struct{}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record today's net worth for every store" }
func (*snapshotCmd) Usage() string {
	return `nexusctl snapshot

  Runs the daily history job once. Stores that already have a point for
  today are left alone.
`
}

func (*snapshotCmd) SetFlags(*flag.FlagSet) {}

func (*snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer closeApp(a)

	written, err := a.Services.Dashboard.SnapshotAll(ctx)
	fmt.Printf("recorded %d history points\n", written)
	if err != nil {
		fail("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
