package metrics

import (
	"time"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exports reporter activity as Prometheus series.
type Recorder struct {
	priceFetches   *prometheus.CounterVec
	balances       *prometheus.CounterVec
	runDuration    prometheus.Histogram
	runFailures    prometheus.Counter
	lastRunSuccess prometheus.Gauge
}

var _ application.Recorder = (*Recorder)(nil)

// NewRecorder registers the reporter series on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		priceFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reporter_price_fetches_total",
				Help: "Market data lookups by currency and status",
			},
			[]string{"currency", "status"},
		),
		balances: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reporter_balances_total",
				Help: "Balances processed by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		runDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "reporter_run_duration_seconds",
				Help:    "Duration of reporter runs",
				Buckets: []float64{.25, .5, 1, 2, 5, 10, 30, 60},
			},
		),
		runFailures: f.NewCounter(
			prometheus.CounterOpts{
				Name: "reporter_run_failures_total",
				Help: "Reporter runs that ended with an error",
			},
		),
		lastRunSuccess: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "reporter_last_success_timestamp_seconds",
				Help: "Unix time of the last successful run",
			},
		),
	}
}

func (r *Recorder) PriceFetched(currency string, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	r.priceFetches.WithLabelValues(domain.NormalizeCurrency(currency), status).Inc()
}

func (r *Recorder) BalanceProcessed(source domain.Source, outcome application.Outcome) {
	r.balances.WithLabelValues(source.String(), outcome.String()).Inc()
}

func (r *Recorder) RunFinished(elapsed time.Duration, err error) {
	r.runDuration.Observe(elapsed.Seconds())
	if err != nil {
		r.runFailures.Inc()
		return
	}
	r.lastRunSuccess.SetToCurrentTime()
}
