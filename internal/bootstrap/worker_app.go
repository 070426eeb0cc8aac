package bootstrap

import (
	"context"
	"errors"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/config"
	infraconfig "wallet-balances-reporter/internal/infrastructure/config"
	httpserver "wallet-balances-reporter/internal/infrastructure/http"
	"wallet-balances-reporter/internal/infrastructure/worker"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReporterApp runs exactly one reporting batch. A duplicate trigger exits cleanly.
type ReporterApp struct {
	Config   config.Config
	Reporter *application.Reporter
	Log      *zap.Logger
}

func (a *ReporterApp) Run(ctx context.Context) error {
	a.Log.Info("reporter starting", zap.String("mode", a.Config.Mode()), zap.String("env", a.Config.Env))
	err := a.Reporter.Run(ctx)
	if errors.Is(err, application.ErrDuplicateRun) {
		a.Log.Info("reporter skipped: window already reported")
		return nil
	}
	return err
}

// WorkerApp runs the reporter on a schedule and, when METRICS_ADDR is set,
// serves /healthz, /readyz and /metrics next to it.
type WorkerApp struct {
	Config    config.Config
	Scheduler *worker.Scheduler
	Registry  *prometheus.Registry
	Log       *zap.Logger
}

func ProvideScheduler(cfg config.Config, r *application.Reporter, log *zap.Logger) *worker.Scheduler {
	return &worker.Scheduler{Runner: r, Every: cfg.ScheduleInterval, Log: log}
}

func (a *WorkerApp) Run(ctx context.Context) error {
	a.Log.Info("worker starting", zap.String("mode", a.Config.Mode()), zap.Duration("every", a.Config.ScheduleInterval))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Scheduler.Start(gctx)
		return nil
	})
	if a.Config.MetricsAddr != "" {
		g.Go(func() error {
			h := httpserver.NewRouter(a.Scheduler.Ready, a.Registry)
			return httpserver.Serve(gctx, a.Config.MetricsAddr, h, infraconfig.DefaultShutdownTimeout, a.Log)
		})
	}
	return g.Wait()
}
