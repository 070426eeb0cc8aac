package provider

import (
	"context"
	"net/http"
	"time"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BinanceProvider prices pairs from the Binance 24hr ticker.
type BinanceProvider struct {
	Client *binance.Client
}

var _ application.RateProvider = (*BinanceProvider)(nil)

func NewBinanceProvider(baseURL string, hc *http.Client) *BinanceProvider {
	c := binance.NewClient("", "")
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	if hc != nil {
		c.HTTPClient = hc
	}
	return &BinanceProvider{Client: c}
}

func (p *BinanceProvider) Get(ctx context.Context, pair domain.CurrencyPair) (domain.Quote, error) {
	symbol := exchangeSymbol(pair)
	stats, err := p.Client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return domain.Quote{}, errors.Wrapf(err, "binance: 24hr ticker %s", symbol)
	}
	if len(stats) == 0 || stats[0] == nil || stats[0].LastPrice == "" {
		return domain.Quote{}, errors.Wrapf(domain.ErrMissingPrice, "binance: 24hr ticker %s", symbol)
	}
	last, err := decimal.NewFromString(stats[0].LastPrice)
	if err != nil {
		return domain.Quote{}, errors.Wrapf(err, "binance: parse %s last price", symbol)
	}
	return domain.Quote{Pair: pair, Price: last.InexactFloat64(), Source: "binance", UpdatedAt: time.Now().UTC()}, nil
}
