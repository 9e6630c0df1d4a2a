// Package scheduler runs the daily net worth snapshot on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule records history five minutes past midnight.
const DefaultSchedule = "5 0 * * *"

// runTimeout bounds a single snapshot run. Valuation may call the quote
// provider once per holding.
const runTimeout = 5 * time.Minute

// Snapshotter records today's history point for every store.
type Snapshotter interface {
	SnapshotAll(ctx context.Context) (int, error)
}

// Scheduler owns the cron runner and the snapshot job.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	snap     Snapshotter
	ctx      context.Context
}

// New creates a scheduler that runs snap on schedule, a standard five field
// cron expression or a descriptor such as "@daily" or "@every 1h".
// An empty schedule means DefaultSchedule.
func New(schedule string, snap Snapshotter) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	logger := cronLogger{}
	s := &Scheduler{
		cron: cron.New(cron.WithLogger(logger), cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		schedule: schedule,
		snap:     snap,
		ctx:      context.Background(),
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Run starts the cron runner and blocks until ctx is cancelled. It waits for
// an in flight snapshot to finish before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.ctx = ctx
	s.cron.Start()
	log.Info().Str("schedule", s.schedule).Msg("snapshot scheduler started")

	<-ctx.Done()

	<-s.cron.Stop().Done()
	log.Info().Msg("snapshot scheduler stopped")
	return nil
}

// RunOnce records a snapshot for every store immediately.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	written, err := s.snap.SnapshotAll(ctx)
	entry := log.Info()
	if err != nil {
		entry = log.Warn().Err(err)
	}
	entry.Int("written", written).Dur("duration", time.Since(start)).Msg("history snapshot")
	return written, err
}

func (s *Scheduler) run() {
	// Errors are logged by RunOnce; the next tick retries.
	_, _ = s.RunOnce(s.ctx)
}

// cronLogger routes the cron runner's own messages to the phuslu logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().KeysAndValues(keysAndValues...).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).KeysAndValues(keysAndValues...).Msg(msg)
}
