package provider

import (
	"context"
	"net/http"
	"time"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BybitProvider prices pairs from Bybit V5 spot tickers. The bybit client takes
// no context, so the deadline comes from the http.Client timeout.
type BybitProvider struct {
	Client *bybit.Client
}

var _ application.RateProvider = (*BybitProvider)(nil)

func NewBybitProvider(baseURL string, hc *http.Client) *BybitProvider {
	c := bybit.NewClient()
	if baseURL != "" {
		c = c.WithBaseURL(baseURL)
	}
	if hc != nil {
		c = c.WithHTTPClient(hc)
	}
	return &BybitProvider{Client: c}
}

func (p *BybitProvider) Get(ctx context.Context, pair domain.CurrencyPair) (domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return domain.Quote{}, err
	}
	symbol := bybit.SymbolV5(exchangeSymbol(pair))
	res, err := p.Client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
		Symbol:   &symbol,
	})
	if err != nil {
		return domain.Quote{}, errors.Wrapf(err, "bybit: tickers %s", symbol)
	}
	if res.Result.Spot == nil || len(res.Result.Spot.List) == 0 {
		return domain.Quote{}, errors.Wrapf(domain.ErrMissingPrice, "bybit: tickers %s", symbol)
	}
	last, err := decimal.NewFromString(res.Result.Spot.List[0].LastPrice)
	if err != nil {
		return domain.Quote{}, errors.Wrapf(err, "bybit: parse %s last price", symbol)
	}
	return domain.Quote{Pair: pair, Price: last.InexactFloat64(), Source: "bybit", UpdatedAt: time.Now().UTC()}, nil
}
