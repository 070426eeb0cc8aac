package application

import (
	"context"
	"math"
	"sync"
	"time"

	"wallet-balances-reporter/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PriceResolver converts currencies to USD through a single BTC hop and memoizes
// the result for the lifetime of one run. A price of 0 means "unknown".
type PriceResolver struct {
	provider RateProvider
	log      *zap.Logger
	rec      Recorder
	timeout  time.Duration

	mu    sync.RWMutex
	cache map[string]float64
	group singleflight.Group
}

func NewPriceResolver(provider RateProvider, log *zap.Logger, rec Recorder, timeout time.Duration) *PriceResolver {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = NoopRecorder{}
	}
	return &PriceResolver{
		provider: provider,
		log:      log,
		rec:      rec,
		timeout:  timeout,
		cache:    map[string]float64{},
	}
}

// WarmUp seeds the cache with BTC-USD. It must complete before any ResolveUSD call.
func (r *PriceResolver) WarmUp(ctx context.Context) error {
	price := r.fetch(ctx, domain.NewCurrencyPair(domain.BTC, domain.USD))
	r.store(domain.BTC, price)
	if price == 0 {
		return ErrWarmUpFailed
	}
	r.log.Info("price_cache_warmed", zap.Float64("btc_usd", price))
	return nil
}

// ResolveUSD returns the USD unit price of currency, or 0 when it cannot be priced.
// Concurrent calls for the same uncached currency share one fetch.
func (r *PriceResolver) ResolveUSD(ctx context.Context, currency string) float64 {
	code := domain.NormalizeCurrency(currency)
	if p, ok := r.Cached(code); ok {
		return p
	}
	v, _, _ := r.group.Do(code, func() (any, error) {
		if p, ok := r.Cached(code); ok {
			return p, nil
		}
		// A missing BTC entry reads as 0, so every price resolves to the sentinel.
		btcUSD, _ := r.Cached(domain.BTC)
		price := r.fetch(ctx, domain.NewCurrencyPair(code, domain.BTC)) * btcUSD
		r.store(code, price)
		if price != 0 {
			r.log.Debug("price_resolved", zap.String("currency", code), zap.Float64("usd_price", price))
		}
		return price, nil
	})
	return v.(float64)
}

func (r *PriceResolver) Cached(code string) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.cache[domain.NormalizeCurrency(code)]
	return p, ok
}

// Snapshot returns a copy of the cache.
func (r *PriceResolver) Snapshot() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]float64, len(r.cache))
	for k, v := range r.cache {
		out[k] = v
	}
	return out
}

func (r *PriceResolver) store(code string, price float64) {
	r.mu.Lock()
	r.cache[code] = price
	r.mu.Unlock()
}

func (r *PriceResolver) fetch(ctx context.Context, pair domain.CurrencyPair) float64 {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	q, err := r.provider.Get(ctx, pair)
	if err == nil && (math.IsNaN(q.Price) || math.IsInf(q.Price, 0) || q.Price < 0) {
		err = domain.ErrMissingPrice
	}
	if err != nil {
		r.log.Error("price_fetch_failed", zap.String("pair", pair.String()), zap.Error(err))
		r.rec.PriceFetched(pair.Base, false)
		return 0
	}
	r.rec.PriceFetched(pair.Base, true)
	return q.Price
}
