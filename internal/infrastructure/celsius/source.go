package celsius

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"
	"wallet-balances-reporter/internal/infrastructure/httpx"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://wallet-api.celsius.network"
	balancePath    = "/wallet/balance"
)

type balanceSummary struct {
	Balance map[string]string `json:"balance"`
}

// Source reports every non-zero coin in the Celsius wallet balance summary.
type Source struct {
	baseURL string
	http    *httpx.Client
}

var _ application.AccountSource = (*Source)(nil)

func NewSource(baseURL, apiKey, partnerToken string, hc *http.Client, maxRetries uint64) *Source {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		baseURL: baseURL,
		http: &httpx.Client{
			HTTP:       hc,
			MaxRetries: maxRetries,
			Header: http.Header{
				"X-Cel-Partner-Token": []string{partnerToken},
				"X-Cel-Api-Key":       []string{apiKey},
			},
		},
	}
}

func (s *Source) Name() string { return "celsius" }

func (s *Source) FetchReportableBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	var summary balanceSummary
	if err := s.http.DoJSON(ctx, http.MethodGet, s.baseURL+balancePath, nil, &summary); err != nil {
		return nil, errors.Wrap(err, "celsius: get balance summary")
	}
	coins := make([]string, 0, len(summary.Balance))
	for coin := range summary.Balance {
		coins = append(coins, coin)
	}
	sort.Strings(coins)

	out := make([]domain.AccountBalance, 0, len(coins))
	for _, coin := range coins {
		amount, err := domain.ParseAmount(summary.Balance[coin])
		if err != nil {
			return nil, errors.Wrapf(err, "celsius: %s balance", coin)
		}
		if amount.IsZero() {
			continue
		}
		out = append(out, domain.AccountBalance{Currency: coin, Amount: amount, Source: domain.SourceCelsiusNetwork})
	}
	return out, nil
}
