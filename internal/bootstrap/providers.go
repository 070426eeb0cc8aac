package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/config"
	"wallet-balances-reporter/internal/infrastructure/celsius"
	"wallet-balances-reporter/internal/infrastructure/coinbase"
	infraconfig "wallet-balances-reporter/internal/infrastructure/config"
	"wallet-balances-reporter/internal/infrastructure/logx"
	"wallet-balances-reporter/internal/infrastructure/metrics"
	"wallet-balances-reporter/internal/infrastructure/provider"
	redisstore "wallet-balances-reporter/internal/infrastructure/redis"
	"wallet-balances-reporter/internal/infrastructure/sink"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConfigPath is the optional YAML file layered under the environment.
type ConfigPath string

func ProvideLogger() *zap.Logger { return logx.L() }

// ProvideConfig loads and validates configuration, then applies its log level.
func ProvideConfig(path ConfigPath) (config.Config, error) {
	cfg, err := config.LoadFile(string(path))
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	logx.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func ProvideHTTPClient(cfg config.Config) *http.Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = infraconfig.DefaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

func maxRetries(cfg config.Config) uint64 {
	if cfg.HTTPMaxRetries <= 0 {
		return 0
	}
	return uint64(cfg.HTTPMaxRetries)
}

func ProvideCoinbaseClient(cfg config.Config, hc *http.Client) *coinbase.Client {
	return coinbase.NewClient(cfg.CoinbaseAPIBase, cfg.CoinbaseAPIKey, cfg.CoinbaseAPISecret, cfg.CoinbaseAPIPassphrase, hc, maxRetries(cfg))
}

func ProvideRateProvider(cfg config.Config, cb *coinbase.Client, hc *http.Client) (application.RateProvider, error) {
	switch cfg.PriceSource {
	case "coinbase":
		return &coinbase.StatsProvider{Client: cb}, nil
	case "binance":
		return provider.NewBinanceProvider("", hc), nil
	case "bybit":
		return provider.NewBybitProvider("", hc), nil
	case "fake":
		return provider.NewFake(nil), nil
	default:
		return nil, fmt.Errorf("unsupported PRICE_SOURCE=%q", cfg.PriceSource)
	}
}

// ProvideSources returns the three account sources in reporting order.
func ProvideSources(cfg config.Config, cb *coinbase.Client, hc *http.Client) []application.AccountSource {
	return []application.AccountSource{
		&coinbase.WalletSource{Client: cb},
		&coinbase.TradingSource{Client: cb, HomeCurrency: cfg.HomeCurrency},
		celsius.NewSource(cfg.CelsiusAPIBase, cfg.CelsiusAPIKey, cfg.CelsiusPartnerToken, hc, maxRetries(cfg)),
	}
}

func ProvideSink(cfg config.Config, hc *http.Client, log *zap.Logger) (application.EventSink, func(), error) {
	switch cfg.Sink {
	case "newrelic":
		nr := sink.NewNewRelic(cfg.NewRelicInsertURL, cfg.NewRelicQueryURL, cfg.NewRelicAccountID, cfg.NewRelicInsertKey, hc, maxRetries(cfg))
		return nr, func() {}, nil
	case "kafka":
		k := sink.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		cleanup := func() {
			if err := k.Close(); err != nil {
				log.Warn("closing kafka writer", zap.Error(err))
			}
		}
		return k, cleanup, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported SINK=%q", cfg.Sink)
	}
}

// ProvideIdempotency picks the run de-duplication store from IDEMPOTENCY_BACKEND.
func ProvideIdempotency(ctx context.Context, cfg config.Config, log *zap.Logger) (application.IdempotencyStore, func(), error) {
	switch cfg.IdempotencyBackend {
	case "", "none":
		return application.NoopIdempotency{}, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable; runs will not be de-duplicated", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		return redisstore.New(client, cfg.RunWindow), cleanup, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported IDEMPOTENCY_BACKEND=%q", cfg.IdempotencyBackend)
	}
}

func ProvideRegistry() *prometheus.Registry { return prometheus.NewRegistry() }

func ProvideRecorder(reg *prometheus.Registry) application.Recorder {
	return metrics.NewRecorder(reg)
}

func ProvideReporter(
	cfg config.Config,
	rates application.RateProvider,
	sources []application.AccountSource,
	events application.EventSink,
	idem application.IdempotencyStore,
	rec application.Recorder,
	log *zap.Logger,
) *application.Reporter {
	return application.NewReporter(rates, sources, events,
		application.WithDryRun(cfg.DryRun),
		application.WithRequestTimeout(cfg.RequestTimeout),
		application.WithMaxConcurrency(cfg.MaxConcurrency),
		application.WithIdempotency(idem, cfg.RunWindow),
		application.WithRecorder(rec),
		application.WithLogger(log),
	)
}
