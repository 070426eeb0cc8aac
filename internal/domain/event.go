package domain

const (
	EventTypeWalletBalanceSnapshot = "WalletBalanceSnapshot"
	testEventPrefix                = "Test"
)

// SnapshotEventType returns the event type name, marked as test data in dry-run mode.
func SnapshotEventType(dryRun bool) string {
	if dryRun {
		return testEventPrefix + EventTypeWalletBalanceSnapshot
	}
	return EventTypeWalletBalanceSnapshot
}

type Event struct {
	Type    string
	Balance WalletBalance
}

func NewSnapshotEvent(b WalletBalance, dryRun bool) Event {
	return Event{Type: SnapshotEventType(dryRun), Balance: b}
}

// Attributes is the normalized payload sent to the ingestion sink.
func (e Event) Attributes() map[string]any {
	return map[string]any{
		"cryptocurrency": e.Balance.Crypto,
		"crypto_amount":  e.Balance.Amount,
		"usd_equivalent": e.Balance.USDEquivalent,
		"usd_price":      e.Balance.USDPrice,
		"source":         e.Balance.Source.String(),
	}
}
