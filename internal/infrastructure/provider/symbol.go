package provider

import "wallet-balances-reporter/internal/domain"

// exchangeSymbol maps a pair to a spot symbol on USDT-quoted exchanges.
func exchangeSymbol(pair domain.CurrencyPair) string {
	if pair.Quote == domain.USD {
		return pair.Base + "USDT"
	}
	return pair.Symbol()
}
