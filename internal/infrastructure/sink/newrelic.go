package sink

import (
	"context"
	"net/http"
	"strings"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"
	"wallet-balances-reporter/internal/infrastructure/httpx"

	"github.com/pkg/errors"
)

// NewRelic posts custom events to the Insights insert API.
type NewRelic struct {
	InsertURL string
	// QueryURL is carried for operators; reporting never reads back.
	QueryURL  string
	AccountID string

	api *httpx.Client
}

var _ application.EventSink = (*NewRelic)(nil)

func NewNewRelic(insertURL, queryURL, accountID, insertKey string, hc *http.Client, maxRetries uint64) *NewRelic {
	return &NewRelic{
		InsertURL: strings.TrimRight(insertURL, "/"),
		QueryURL:  strings.TrimRight(queryURL, "/"),
		AccountID: accountID,
		api: &httpx.Client{
			HTTP:       hc,
			MaxRetries: maxRetries,
			Header:     http.Header{"X-Insert-Key": []string{insertKey}},
		},
	}
}

func (n *NewRelic) Insert(ctx context.Context, ev domain.Event) error {
	payload := ev.Attributes()
	payload["eventType"] = ev.Type
	url := n.InsertURL + "/v1/accounts/" + n.AccountID + "/events"
	if err := n.api.DoJSON(ctx, http.MethodPost, url, []map[string]any{payload}, nil); err != nil {
		return errors.Wrapf(err, "newrelic: insert %s", ev.Type)
	}
	return nil
}
