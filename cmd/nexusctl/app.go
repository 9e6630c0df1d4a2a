package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/phuslu/log"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/app"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/config"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/logging"
)

// openApp loads the configuration the server would use and opens its database.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if level == "info" || level == "debug" {
		// Keep the terminal for command output.
		level = "warn"
	}
	logging.Setup(level)
	return app.New(ctx, cfg)
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
