package domain

import "time"

type Quote struct {
	Pair      CurrencyPair
	Price     float64
	Source    string
	UpdatedAt time.Time
}
