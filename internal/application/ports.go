package application

import (
	"context"

	"wallet-balances-reporter/internal/domain"
)

// RateProvider returns the last traded price of pair.Base in pair.Quote.
type RateProvider interface {
	Get(ctx context.Context, pair domain.CurrencyPair) (domain.Quote, error)
}

// AccountSource lists the balances of one account provider that should be reported.
type AccountSource interface {
	Name() string
	FetchReportableBalances(ctx context.Context) ([]domain.AccountBalance, error)
}

// EventSink delivers one event to the ingestion endpoint.
type EventSink interface {
	Insert(ctx context.Context, ev domain.Event) error
}
