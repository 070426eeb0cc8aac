package application

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"wallet-balances-reporter/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	runKeyPrefix   = "wallet-balances-reporter:run:"
	releaseTimeout = 5 * time.Second
)

// Reporter runs one balance reporting batch per Run call. Nothing, including
// the price cache, is carried from one run to the next.
type Reporter struct {
	provider RateProvider
	sources  []AccountSource
	sink     EventSink

	dryRun         bool
	timeout        time.Duration
	maxConcurrency int
	idem           IdempotencyStore
	runWindow      time.Duration
	log            *zap.Logger
	rec            Recorder
	clock          Clock
	idgen          IDGen
}

type Option func(*Reporter)

func WithDryRun(dryRun bool) Option             { return func(r *Reporter) { r.dryRun = dryRun } }
func WithRequestTimeout(d time.Duration) Option { return func(r *Reporter) { r.timeout = d } }
func WithMaxConcurrency(n int) Option           { return func(r *Reporter) { r.maxConcurrency = n } }
func WithLogger(l *zap.Logger) Option           { return func(r *Reporter) { r.log = l } }
func WithRecorder(rec Recorder) Option          { return func(r *Reporter) { r.rec = rec } }
func WithClock(c Clock) Option                  { return func(r *Reporter) { r.clock = c } }
func WithIDGen(g IDGen) Option                  { return func(r *Reporter) { r.idgen = g } }

// WithIdempotency skips a run when another one already reserved the same window.
func WithIdempotency(store IdempotencyStore, window time.Duration) Option {
	return func(r *Reporter) {
		r.idem = store
		r.runWindow = window
	}
}

func NewReporter(provider RateProvider, sources []AccountSource, sink EventSink, opts ...Option) *Reporter {
	r := &Reporter{
		provider:       provider,
		sources:        sources,
		sink:           sink,
		maxConcurrency: 8,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.rec == nil {
		r.rec = NoopRecorder{}
	}
	if r.idem == nil {
		r.idem = NoopIdempotency{}
	}
	if r.clock == nil {
		r.clock = realClock{}
	}
	if r.idgen == nil {
		r.idgen = defaultIDGen{}
	}
	return r
}

type runStats struct {
	reported, skipped, failed atomic.Int64
}

func (s *runStats) add(o Outcome) {
	switch o {
	case OutcomeReported:
		s.reported.Add(1)
	case OutcomeSkipped:
		s.skipped.Add(1)
	default:
		s.failed.Add(1)
	}
}

// Run warms the price cache, fans out over every account source and every
// reportable balance, and waits for all of them. Only a warm-up failure or an
// account source failure fails the run. A run whose window is already reserved
// returns ErrDuplicateRun without doing any work.
func (r *Reporter) Run(ctx context.Context) error {
	start := r.clock.Now()
	log := r.log.With(zap.String("run_id", r.idgen.NewID()), zap.Bool("dry_run", r.dryRun))

	key, ok := r.reserve(ctx, log, start)
	if !ok {
		log.Info("run_skipped_duplicate", zap.String("key", key))
		return ErrDuplicateRun
	}
	err := r.run(ctx, log, start)
	if err != nil && key != "" {
		r.release(ctx, log, key)
	}
	r.rec.RunFinished(r.clock.Now().Sub(start), err)
	return err
}

func (r *Reporter) run(ctx context.Context, log *zap.Logger, start time.Time) error {
	log.Info("run_started", zap.Int("sources", len(r.sources)))

	resolver := NewPriceResolver(r.provider, log, r.rec, r.timeout)
	if err := resolver.WarmUp(ctx); err != nil {
		log.Error("run_failed", zap.Error(err))
		return err
	}
	pipeline := NewPipeline(resolver, r.sink, r.dryRun, r.maxConcurrency, log, r.rec)

	var stats runStats
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range r.sources {
		g.Go(func() error {
			balances, err := r.fetch(gctx, src)
			if err != nil {
				log.Error("account_fetch_failed", zap.String("source", src.Name()), zap.Error(err))
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			log.Info("accounts_fetched", zap.String("source", src.Name()), zap.Int("reportable", len(balances)))
			for _, b := range balances {
				g.Go(func() error {
					stats.add(pipeline.ConvertAndReport(gctx, b.Currency, b.Amount.InexactFloat64(), b.Source))
					return nil
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("run_failed", zap.Error(err))
		return err
	}

	log.Info("run_completed",
		zap.Duration("elapsed", r.clock.Now().Sub(start)),
		zap.Int64("reported", stats.reported.Load()),
		zap.Int64("skipped", stats.skipped.Load()),
		zap.Int64("failed", stats.failed.Load()),
		zap.Any("usd_prices", resolver.Snapshot()),
	)
	return nil
}

func (r *Reporter) fetch(ctx context.Context, src AccountSource) ([]domain.AccountBalance, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return src.FetchReportableBalances(ctx)
}

// reserve claims the current run window. It reports whether the run may
// proceed; the key is empty when no reservation is held. A store failure does
// not block the run.
func (r *Reporter) reserve(ctx context.Context, log *zap.Logger, now time.Time) (string, bool) {
	if r.runWindow <= 0 {
		return "", true
	}
	key := runKeyPrefix + strconv.FormatInt(now.Truncate(r.runWindow).Unix(), 10)
	ok, err := r.idem.TryReserve(ctx, key)
	if err != nil {
		log.Warn("run_reserve_failed", zap.String("key", key), zap.Error(err))
		return "", true
	}
	return key, ok
}

// release frees the window of a failed run so a retried trigger runs again.
// It is detached from ctx cancellation.
func (r *Reporter) release(ctx context.Context, log *zap.Logger, key string) {
	timeout := r.timeout
	if timeout <= 0 {
		timeout = releaseTimeout
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := r.idem.Release(rctx, key); err != nil {
		log.Warn("run_release_failed", zap.String("key", key), zap.Error(err))
	}
}
