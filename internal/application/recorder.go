package application

import (
	"time"

	"wallet-balances-reporter/internal/domain"
)

// Recorder observes reporter activity. Implementations must be safe for concurrent use.
type Recorder interface {
	PriceFetched(currency string, ok bool)
	BalanceProcessed(source domain.Source, outcome Outcome)
	RunFinished(elapsed time.Duration, err error)
}

type NoopRecorder struct{}

func (NoopRecorder) PriceFetched(string, bool)               {}
func (NoopRecorder) BalanceProcessed(domain.Source, Outcome) {}
func (NoopRecorder) RunFinished(time.Duration, error)        {}
