package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountBalance is a reportable entry read from one account provider.
type AccountBalance struct {
	Currency string
	Amount   decimal.Decimal
	Source   Source
}

// WalletBalance is a priced balance. Build it with NewWalletBalance.
type WalletBalance struct {
	Crypto        string
	Amount        float64
	USDPrice      float64
	USDEquivalent float64
	Source        Source
}

func NewWalletBalance(crypto string, amount, usdPrice float64, source Source) WalletBalance {
	return WalletBalance{
		Crypto:        NormalizeCurrency(crypto),
		Amount:        amount,
		USDPrice:      usdPrice,
		USDEquivalent: amount * usdPrice,
		Source:        source,
	}
}

// ParseAmount parses a provider balance string such as "0.0000000000000000".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", ErrInvalidAmount, s, err)
	}
	return d, nil
}
