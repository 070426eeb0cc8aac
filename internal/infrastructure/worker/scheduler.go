package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"wallet-balances-reporter/internal/application"
	infraconfig "wallet-balances-reporter/internal/infrastructure/config"

	"go.uber.org/zap"
)

// Runner executes one reporting batch.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler runs the reporter immediately and then on every tick until the
// context is canceled. A failed run is logged and the next tick runs again.
type Scheduler struct {
	Runner Runner
	Every  time.Duration
	Log    *zap.Logger

	ready atomic.Bool
}

var _ application.Worker = (*Scheduler)(nil)

func (s *Scheduler) Start(ctx context.Context) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	every := s.Every
	if every <= 0 {
		log.Warn("non-positive schedule interval; using default", zap.Duration("every", s.Every))
		every = infraconfig.DefaultScheduleInterval
	}
	log.Info("scheduler_started", zap.Duration("every", every))
	s.runOnce(ctx, log)

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("scheduler_stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx, log)
		}
	}
}

// Ready reports whether at least one run has succeeded. Runs skipped as
// duplicates do not count.
func (s *Scheduler) Ready() bool {
	return s.ready.Load()
}

func (s *Scheduler) runOnce(ctx context.Context, log *zap.Logger) {
	err := s.Runner.Run(ctx)
	switch {
	case errors.Is(err, application.ErrDuplicateRun):
		log.Info("scheduled_run_skipped")
		return
	case err != nil:
		log.Error("scheduled_run_failed", zap.Error(err))
		return
	}
	s.ready.Store(true)
}
