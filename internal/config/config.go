package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	DryRun   bool
	// Coinbase Pro (accounts, market data)
	CoinbaseAPIBase       string
	CoinbaseAPIKey        string
	CoinbaseAPISecret     string
	CoinbaseAPIPassphrase string
	HomeCurrency          string
	// Celsius Network
	CelsiusAPIBase      string
	CelsiusAPIKey       string
	CelsiusPartnerToken string
	// Market data
	PriceSource string
	// Sink
	Sink              string
	NewRelicAccountID string
	NewRelicInsertKey string
	NewRelicQueryURL  string
	NewRelicInsertURL string
	KafkaBrokers      []string
	KafkaTopic        string
	// Runtime
	RequestTimeout time.Duration
	HTTPMaxRetries int
	MaxConcurrency int
	// Run de-duplication
	IdempotencyBackend string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RunWindow          time.Duration
	// Worker
	ScheduleInterval time.Duration
	MetricsAddr      string
}

// fileConfig holds the non-secret settings that may come from CONFIG_FILE.
type fileConfig struct {
	Env                string   `yaml:"env"`
	LogLevel           string   `yaml:"log_level"`
	CoinbaseAPIBase    string   `yaml:"coinbase_pro_api_base"`
	CelsiusAPIBase     string   `yaml:"celsius_api_base"`
	HomeCurrency       string   `yaml:"home_currency"`
	PriceSource        string   `yaml:"price_source"`
	Sink               string   `yaml:"sink"`
	NewRelicQueryURL   string   `yaml:"newrelic_query_url"`
	NewRelicInsertURL  string   `yaml:"newrelic_insert_url"`
	KafkaBrokers       []string `yaml:"kafka_brokers"`
	KafkaTopic         string   `yaml:"kafka_topic"`
	RequestTimeoutMS   int      `yaml:"request_timeout_ms"`
	HTTPMaxRetries     int      `yaml:"http_max_retries"`
	MaxConcurrency     int      `yaml:"max_concurrency"`
	IdempotencyBackend string   `yaml:"idempotency_backend"`
	RedisAddr          string   `yaml:"redis_addr"`
	RunWindowMS        int      `yaml:"run_window_ms"`
	ScheduleIntervalMS int      `yaml:"schedule_interval_ms"`
	MetricsAddr        string   `yaml:"metrics_addr"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func strDef(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func intDef(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func ms(key string, def int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, strconv.Itoa(def)), def)) * time.Millisecond
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads CONFIG_FILE (if set) and environment variables and applies defaults.
// Environment wins over the file, the file wins over built-in defaults.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file.
func LoadFile(path string) (Config, error) {
	var fc fileConfig
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	brokers := splitList(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		brokers = fc.KafkaBrokers
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	return Config{
		Env:                   getEnv("ENV", strDef(fc.Env, "local")),
		LogLevel:              getEnv("LOG_LEVEL", strDef(fc.LogLevel, "info")),
		DryRun:                os.Getenv("RUN_MODE") == "test",
		CoinbaseAPIBase:       getEnv("COINBASE_PRO_API_BASE", strDef(fc.CoinbaseAPIBase, "https://api.pro.coinbase.com")),
		CoinbaseAPIKey:        os.Getenv("CBP_API_KEY"),
		CoinbaseAPISecret:     os.Getenv("CBP_API_KEY_SECRET"),
		CoinbaseAPIPassphrase: os.Getenv("CBP_API_KEY_PASSPHRASE"),
		HomeCurrency:          strings.ToUpper(getEnv("HOME_CURRENCY", strDef(fc.HomeCurrency, "USD"))),
		CelsiusAPIBase:        getEnv("CELSIUS_API_BASE", strDef(fc.CelsiusAPIBase, "https://wallet-api.celsius.network")),
		CelsiusAPIKey:         os.Getenv("CELNET_API_KEY"),
		CelsiusPartnerToken:   os.Getenv("CELNET_PARTNER_TOKEN"),
		PriceSource:           getEnv("PRICE_SOURCE", strDef(fc.PriceSource, "coinbase")),
		Sink:                  getEnv("SINK", strDef(fc.Sink, "newrelic")),
		NewRelicAccountID:     os.Getenv("NEWRELIC_ACCOUNT_ID"),
		NewRelicInsertKey:     os.Getenv("NEWRELIC_INSIGHTS_INSERT_API_KEY"),
		NewRelicQueryURL:      getEnv("NEWRELIC_INSIGHTS_QUERY_API_URL", strDef(fc.NewRelicQueryURL, "https://insights-api.newrelic.com")),
		NewRelicInsertURL:     getEnv("NEWRELIC_INSIGHTS_INSERT_API_URL", strDef(fc.NewRelicInsertURL, "https://insights-collector.newrelic.com")),
		KafkaBrokers:          brokers,
		KafkaTopic:            getEnv("KAFKA_TOPIC", strDef(fc.KafkaTopic, "wallet-balance-snapshots")),
		RequestTimeout:        ms("REQUEST_TIMEOUT_MS", intDef(fc.RequestTimeoutMS, 10000)),
		HTTPMaxRetries:        atoiDef(getEnv("HTTP_MAX_RETRIES", ""), fc.HTTPMaxRetries),
		MaxConcurrency:        atoiDef(getEnv("MAX_CONCURRENCY", ""), intDef(fc.MaxConcurrency, 8)),
		IdempotencyBackend:    getEnv("IDEMPOTENCY_BACKEND", strDef(fc.IdempotencyBackend, "none")),
		RedisAddr:             getEnv("REDIS_ADDR", strDef(fc.RedisAddr, "localhost:6379")),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               atoiDef(getEnv("REDIS_DB", "0"), 0),
		RunWindow:             ms("RUN_WINDOW_MS", intDef(fc.RunWindowMS, 3600000)),
		ScheduleInterval:      ms("SCHEDULE_INTERVAL_MS", intDef(fc.ScheduleIntervalMS, 3600000)),
		MetricsAddr:           getEnv("METRICS_ADDR", fc.MetricsAddr),
	}, nil
}

// Validate reports every credential missing for the selected components.
func (c Config) Validate() error {
	var missing []string
	need := func(key, v string) {
		if v == "" {
			missing = append(missing, key)
		}
	}
	need("CBP_API_KEY", c.CoinbaseAPIKey)
	need("CBP_API_KEY_SECRET", c.CoinbaseAPISecret)
	need("CBP_API_KEY_PASSPHRASE", c.CoinbaseAPIPassphrase)
	need("CELNET_API_KEY", c.CelsiusAPIKey)
	need("CELNET_PARTNER_TOKEN", c.CelsiusPartnerToken)
	switch c.Sink {
	case "newrelic":
		need("NEWRELIC_ACCOUNT_ID", c.NewRelicAccountID)
		need("NEWRELIC_INSIGHTS_INSERT_API_KEY", c.NewRelicInsertKey)
	case "kafka":
		need("KAFKA_TOPIC", c.KafkaTopic)
	default:
		return fmt.Errorf("unsupported SINK=%q", c.Sink)
	}
	switch c.PriceSource {
	case "coinbase", "binance", "bybit", "fake":
	default:
		return fmt.Errorf("unsupported PRICE_SOURCE=%q", c.PriceSource)
	}
	if c.ScheduleInterval <= 0 {
		return fmt.Errorf("SCHEDULE_INTERVAL_MS must be positive, got %s", c.ScheduleInterval)
	}
	if c.RunWindow < 0 {
		return fmt.Errorf("RUN_WINDOW_MS must not be negative, got %s", c.RunWindow)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Mode names the run mode for logs.
func (c Config) Mode() string {
	if c.DryRun {
		return "dry run"
	}
	return "production"
}
