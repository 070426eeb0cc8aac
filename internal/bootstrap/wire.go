//go:build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"
)

var reporterSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvideHTTPClient,
	ProvideCoinbaseClient,
	ProvideRateProvider,
	ProvideSources,
	ProvideSink,
	ProvideIdempotency,
	ProvideRegistry,
	ProvideRecorder,
	ProvideReporter,
)

// InitReporterApp builds a single-run reporter.
func InitReporterApp(ctx context.Context, path ConfigPath) (*ReporterApp, func(), error) {
	wire.Build(
		reporterSet,
		wire.Struct(new(ReporterApp), "*"),
	)
	return nil, nil, nil
}

// InitWorkerApp builds the scheduled reporter with its operational endpoints.
func InitWorkerApp(ctx context.Context, path ConfigPath) (*WorkerApp, func(), error) {
	wire.Build(
		reporterSet,
		ProvideScheduler,
		wire.Struct(new(WorkerApp), "*"),
	)
	return nil, nil, nil
}
