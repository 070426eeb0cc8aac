package coinbase

import (
	"context"
	"strings"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"

	"github.com/pkg/errors"
)

const (
	coinbaseAccountsPath = "/coinbase-accounts"
	accountsPath         = "/accounts"
	walletType           = "wallet"
)

type coinbaseAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
	Active   bool   `json:"active"`
}

type tradingAccount struct {
	ID        string `json:"id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
	Available string `json:"available"`
	Hold      string `json:"hold"`
}

// WalletSource reports the crypto wallets linked to the Coinbase account.
// Fiat wallets and empty wallets are skipped.
type WalletSource struct {
	Client *Client
}

var _ application.AccountSource = (*WalletSource)(nil)

func (s *WalletSource) Name() string { return "coinbase" }

func (s *WalletSource) FetchReportableBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	var accounts []coinbaseAccount
	if err := s.Client.get(ctx, coinbaseAccountsPath, true, &accounts); err != nil {
		return nil, errors.Wrap(err, "coinbase: list coinbase accounts")
	}
	out := make([]domain.AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		amount, err := domain.ParseAmount(a.Balance)
		if err != nil {
			return nil, errors.Wrapf(err, "coinbase: account %s", a.ID)
		}
		if a.Type != walletType || amount.IsZero() {
			continue
		}
		out = append(out, domain.AccountBalance{Currency: a.Currency, Amount: amount, Source: domain.SourceCoinbase})
	}
	return out, nil
}

// TradingSource reports Coinbase Pro trading balances, except the home fiat account.
type TradingSource struct {
	Client       *Client
	HomeCurrency string
}

var _ application.AccountSource = (*TradingSource)(nil)

func (s *TradingSource) Name() string { return "coinbase_pro" }

func (s *TradingSource) FetchReportableBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	var accounts []tradingAccount
	if err := s.Client.get(ctx, accountsPath, true, &accounts); err != nil {
		return nil, errors.Wrap(err, "coinbase: list pro accounts")
	}
	home := domain.NormalizeCurrency(s.HomeCurrency)
	if home == "" {
		home = domain.USD
	}
	out := make([]domain.AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		amount, err := domain.ParseAmount(a.Balance)
		if err != nil {
			return nil, errors.Wrapf(err, "coinbase: pro account %s", a.ID)
		}
		if amount.IsZero() || strings.EqualFold(a.Currency, home) {
			continue
		}
		out = append(out, domain.AccountBalance{Currency: a.Currency, Amount: amount, Source: domain.SourceCoinbasePro})
	}
	return out, nil
}
