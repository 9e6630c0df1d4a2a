package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/app"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/config"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/logging"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/scheduler"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start backend")
	}
	defer backend.Close()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      backend.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // price refresh walks every holding
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Str("version", version.Version).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(cfg.Scheduler.Schedule, backend.Services.Dashboard)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create snapshot scheduler")
		}
		g.Go(func() error { return sched.Run(gctx) })
	}

	// Graceful shutdown once a signal arrives or a component fails
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		backend.Close()
		os.Exit(1)
	}
	log.Info().Msg("server exited")
}
