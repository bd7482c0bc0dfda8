package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/usecase"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls   atomic.Int32
	trigger atomic.Value
	err     error
}

func (c *countingSweeper) Sweep(_ context.Context, trigger string) (usecase.SweepReport, error) {
	c.calls.Add(1)
	c.trigger.Store(trigger)
	return usecase.SweepReport{Scanned: 3}, c.err
}

func TestLifecycleSweeper_RunsUntilCancelled(t *testing.T) {
	lc := &countingSweeper{}
	s := NewLifecycleSweeper(lc, 10*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return lc.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
	assert.Equal(t, usecase.TriggerSweep, lc.trigger.Load())
}

func TestLifecycleSweeper_KeepsGoingAfterErrors(t *testing.T) {
	lc := &countingSweeper{err: errors.New("mongo unavailable")}
	s := NewLifecycleSweeper(lc, 5*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	require.Eventually(t, func() bool { return lc.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestNewLifecycleSweeper_TimeoutFloor(t *testing.T) {
	s := NewLifecycleSweeper(&countingSweeper{}, time.Second, logger.NewNop())
	assert.Equal(t, time.Minute, s.timeout)

	s = NewLifecycleSweeper(&countingSweeper{}, time.Hour, logger.NewNop())
	assert.Equal(t, 30*time.Minute, s.timeout)
}
