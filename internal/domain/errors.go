package domain

import "errors"

var (
	ErrMissingPrice  = errors.New("missing last price")
	ErrInvalidAmount = errors.New("invalid amount")
)
