package application

import "errors"

var (
	ErrWarmUpFailed = errors.New("btc-usd warm-up failed")
	// ErrDuplicateRun means another run already reserved the current window.
	ErrDuplicateRun = errors.New("run window already reserved")
)
