package domain

import "strings"

const (
	BTC = "BTC"
	USD = "USD"
)

// CurrencyPair identifies a market quote: the price of one Base in Quote.
type CurrencyPair struct {
	Base  string
	Quote string
}

func NewCurrencyPair(base, quote string) CurrencyPair {
	return CurrencyPair{Base: NormalizeCurrency(base), Quote: NormalizeCurrency(quote)}
}

// String renders the dash separated product id, e.g. ETH-BTC.
func (p CurrencyPair) String() string { return p.Base + "-" + p.Quote }

// Symbol renders the concatenated exchange symbol, e.g. ETHBTC.
func (p CurrencyPair) Symbol() string { return p.Base + p.Quote }

func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
