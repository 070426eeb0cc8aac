package application

import (
	"context"

	"wallet-balances-reporter/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Outcome is the result of one balance going through the pipeline.
type Outcome int

const (
	OutcomeReported Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReported:
		return "reported"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// PriceLookup is the part of PriceResolver the pipeline depends on.
type PriceLookup interface {
	ResolveUSD(ctx context.Context, currency string) float64
}

// Pipeline prices a single balance and reports it to the sink.
type Pipeline struct {
	prices PriceLookup
	sink   EventSink
	dryRun bool
	log    *zap.Logger
	rec    Recorder
	sem    *semaphore.Weighted
}

func NewPipeline(prices PriceLookup, sink EventSink, dryRun bool, maxConcurrency int, log *zap.Logger, rec Recorder) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = NoopRecorder{}
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Pipeline{
		prices: prices,
		sink:   sink,
		dryRun: dryRun,
		log:    log,
		rec:    rec,
		sem:    semaphore.NewWeighted(int64(maxConcurrency)),
	}
}

// ConvertAndReport never fails the batch: unpriced balances are skipped and
// sink failures are logged without retry.
func (p *Pipeline) ConvertAndReport(ctx context.Context, currency string, amount float64, source domain.Source) Outcome {
	out := p.convertAndReport(ctx, currency, amount, source)
	p.rec.BalanceProcessed(source, out)
	return out
}

func (p *Pipeline) convertAndReport(ctx context.Context, currency string, amount float64, source domain.Source) Outcome {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.log.Error("event_report_failed", zap.String("currency", currency), zap.String("source", source.String()), zap.Error(err))
		return OutcomeFailed
	}
	defer p.sem.Release(1)

	usdPrice := p.prices.ResolveUSD(ctx, currency)
	if usdPrice == 0 {
		return OutcomeSkipped
	}

	ev := domain.NewSnapshotEvent(domain.NewWalletBalance(currency, amount, usdPrice, source), p.dryRun)
	fields := []zap.Field{zap.String("event_type", ev.Type), zap.Any("event", ev.Attributes())}
	if err := p.sink.Insert(ctx, ev); err != nil {
		p.log.Error("event_report_failed", append(fields, zap.Error(err))...)
		return OutcomeFailed
	}
	p.log.Info("event_reported", fields...)
	return OutcomeReported
}
