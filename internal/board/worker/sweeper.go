package worker

import (
	"context"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/usecase"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"go.uber.org/zap"
)

type lifecycleSweeper interface {
	Sweep(ctx context.Context, trigger string) (usecase.SweepReport, error)
}

// LifecycleSweeper runs the lifecycle pass over the stored collection on a
// fixed interval.
type LifecycleSweeper struct {
	lifecycle lifecycleSweeper
	interval  time.Duration
	timeout   time.Duration
	logger    *logger.Logger
}

func NewLifecycleSweeper(lifecycle lifecycleSweeper, interval time.Duration, log *logger.Logger) *LifecycleSweeper {
	timeout := interval / 2
	if timeout < time.Minute {
		timeout = time.Minute
	}
	return &LifecycleSweeper{
		lifecycle: lifecycle,
		interval:  interval,
		timeout:   timeout,
		logger:    log.Named("LifecycleSweeper"),
	}
}

// Run sweeps once at startup and then on every tick until ctx is done.
func (s *LifecycleSweeper) Run(ctx context.Context) error {
	s.logger.Info("lifecycle sweeper started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("lifecycle sweeper stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *LifecycleSweeper) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	rep, err := s.lifecycle.Sweep(ctx, usecase.TriggerSweep)
	if err != nil {
		s.logger.Error("lifecycle sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("lifecycle sweep completed",
		zap.Int("scanned", rep.Scanned),
		zap.Int("expired", rep.Expired),
		zap.Int("removed", rep.Removed),
		zap.Int("skipped", rep.Skipped),
		zap.Duration("took", time.Since(start)))
}
