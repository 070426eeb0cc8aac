package domain

// Source tags where a balance was read from. It never drives pipeline logic.
type Source string

const (
	SourceCoinbase       Source = "COINBASE"
	SourceCoinbasePro    Source = "COINBASE_PRO"
	SourceCelsiusNetwork Source = "CELSIUS_NETWORK"
)

func (s Source) String() string { return string(s) }

func (s Source) Valid() bool {
	switch s {
	case SourceCoinbase, SourceCoinbasePro, SourceCelsiusNetwork:
		return true
	default:
		return false
	}
}
