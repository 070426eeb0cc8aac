package celsius

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallet-balances-reporter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, body string, code int) *Source {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/balance", r.URL.Path)
		assert.Equal(t, "partner", r.Header.Get("X-Cel-Partner-Token"))
		assert.Equal(t, "user-key", r.Header.Get("X-Cel-Api-Key"))
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewSource(srv.URL, "user-key", "partner", srv.Client(), 0)
}

func TestFetchReportableBalances(t *testing.T) {
	s := newTestSource(t, `{"balance":{"eth":"1.25","btc":"0","cel":"1000.5","usdc":"0.000"}}`, http.StatusOK)

	got, err := s.FetchReportableBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "cel", got[0].Currency)
	require.Equal(t, "1000.5", got[0].Amount.String())
	require.Equal(t, "eth", got[1].Currency)
	require.Equal(t, domain.SourceCelsiusNetwork, got[1].Source)
}

func TestFetchReportableBalances_NoBreakdown(t *testing.T) {
	s := newTestSource(t, `{"status":"ok"}`, http.StatusOK)

	got, err := s.FetchReportableBalances(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFetchReportableBalances_Unauthorized(t *testing.T) {
	s := newTestSource(t, `{"message":"unauthorized"}`, http.StatusUnauthorized)

	_, err := s.FetchReportableBalances(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}
