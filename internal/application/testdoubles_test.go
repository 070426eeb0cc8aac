package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"wallet-balances-reporter/internal/domain"

	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

type fakeRateProvider struct {
	mu     sync.Mutex
	prices map[string]float64
	errs   map[string]error
	calls  map[string]int
	gate   chan struct{}
}

func newFakeRateProvider(prices map[string]float64) *fakeRateProvider {
	return &fakeRateProvider{prices: prices, errs: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeRateProvider) Get(ctx context.Context, pair domain.CurrencyPair) (domain.Quote, error) {
	f.mu.Lock()
	f.calls[pair.String()]++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.Quote{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[pair.String()]; err != nil {
		return domain.Quote{}, err
	}
	p, ok := f.prices[pair.String()]
	if !ok {
		return domain.Quote{}, domain.ErrMissingPrice
	}
	return domain.Quote{Pair: pair, Price: p, Source: "fake", UpdatedAt: time.Now()}, nil
}

func (f *fakeRateProvider) callCount(pair string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pair]
}

func (f *fakeRateProvider) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type fakeSource struct {
	name     string
	balances []domain.AccountBalance
	err      error
	block    bool

	mu    sync.Mutex
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchReportableBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.balances, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSink struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (f *fakeSink) Insert(_ context.Context, ev domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeSink) recorded() []domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Event(nil), f.events...)
}

type fixedPrice float64

func (p fixedPrice) ResolveUSD(context.Context, string) float64 { return float64(p) }

type fakeIdem struct {
	mu       sync.Mutex
	seen     map[string]bool
	err      error
	released []string
}

func (f *fakeIdem) Release(ctx context.Context, k string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.seen, k)
	f.released = append(f.released, k)
	return nil
}

func (f *fakeIdem) releasedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.released...)
}

func (f *fakeIdem) TryReserve(_ context.Context, k string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

type fakeRecorder struct {
	NoopRecorder
	mu   sync.Mutex
	runs []error
}

func (f *fakeRecorder) RunFinished(_ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, err)
}

func (f *fakeRecorder) finishedRuns() []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]error(nil), f.runs...)
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type fakeIDGen struct{}

func (fakeIDGen) NewID() string { return "run-1" }

func bal(currency, amount string, src domain.Source) domain.AccountBalance {
	return domain.AccountBalance{Currency: currency, Amount: decimal.RequireFromString(amount), Source: src}
}
