package provider

import (
	"context"
	"time"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"

	"github.com/pkg/errors"
)

// Ensure Fake implements application.RateProvider.
var _ application.RateProvider = (*Fake)(nil)

// Fake serves a fixed price table keyed by "BASE-QUOTE". Used for local runs.
type Fake struct {
	prices map[string]float64
}

func NewFake(prices map[string]float64) *Fake {
	if prices == nil {
		prices = map[string]float64{
			"BTC-USD": 50000,
			"ETH-BTC": 0.05,
			"LTC-BTC": 0.002,
		}
	}
	return &Fake{prices: prices}
}

func (f *Fake) Get(_ context.Context, pair domain.CurrencyPair) (domain.Quote, error) {
	p, ok := f.prices[pair.String()]
	if !ok {
		return domain.Quote{}, errors.Wrapf(domain.ErrMissingPrice, "fake: %s", pair)
	}
	return domain.Quote{
		Pair:      pair,
		Price:     p,
		Source:    "fake",
		UpdatedAt: time.Now().UTC(),
	}, nil
}
