package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotter struct {
	calls   atomic.Int32
	written int
	err     error
	ran     chan struct{}
}

func (f *fakeSnapshotter) SnapshotAll(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if f.ran != nil {
		select {
		case f.ran <- struct{}{}:
		default:
		}
	}
	return f.written, f.err
}

func TestNew_RejectsInvalidSchedule(t *testing.T) {
	_, err := New("not a cron line", &fakeSnapshotter{})
	assert.Error(t, err)
}

func TestNew_EmptyScheduleUsesDefault(t *testing.T) {
	s, err := New("", &fakeSnapshotter{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule, s.schedule)
}

func TestRunOnce_ReportsSnapshotResult(t *testing.T) {
	snap := &fakeSnapshotter{written: 3}
	s, err := New("@daily", snap)
	require.NoError(t, err)

	written, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, written)
	assert.Equal(t, int32(1), snap.calls.Load())
}

func TestRunOnce_PassesErrorThrough(t *testing.T) {
	boom := errors.New("store offline")
	s, err := New("@daily", &fakeSnapshotter{written: 1, err: boom})
	require.NoError(t, err)

	written, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, written)
}

func TestRun_FiresOnScheduleAndStopsOnCancel(t *testing.T) {
	snap := &fakeSnapshotter{ran: make(chan struct{}, 1)}
	s, err := New("@every 1s", snap)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-snap.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot job never ran")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.GreaterOrEqual(t, snap.calls.Load(), int32(1))
}
