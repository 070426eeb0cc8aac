package coinbase

import (
	"context"
	"net/url"
	"time"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// StatsProvider prices a pair from the public 24 hour stats endpoint.
type StatsProvider struct {
	Client *Client
}

var _ application.RateProvider = (*StatsProvider)(nil)

type stats24h struct {
	Open   *string `json:"open"`
	High   *string `json:"high"`
	Low    *string `json:"low"`
	Volume *string `json:"volume"`
	Last   *string `json:"last"`
}

func (p *StatsProvider) Get(ctx context.Context, pair domain.CurrencyPair) (domain.Quote, error) {
	var s stats24h
	path := "/products/" + url.PathEscape(pair.String()) + "/stats"
	if err := p.Client.get(ctx, path, false, &s); err != nil {
		return domain.Quote{}, errors.Wrapf(err, "coinbase: get %s stats", pair)
	}
	if s.Last == nil || *s.Last == "" {
		return domain.Quote{}, errors.Wrapf(domain.ErrMissingPrice, "coinbase: %s stats", pair)
	}
	last, err := decimal.NewFromString(*s.Last)
	if err != nil {
		return domain.Quote{}, errors.Wrapf(err, "coinbase: parse %s last %q", pair, *s.Last)
	}
	return domain.Quote{
		Pair:      pair,
		Price:     last.InexactFloat64(),
		Source:    "coinbase",
		UpdatedAt: time.Now().UTC(),
	}, nil
}
