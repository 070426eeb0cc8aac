package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClientRT(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt, Timeout: 2 * time.Second}
}

func respond(r *http.Request, code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header), Request: r}
}

type okResp struct {
	OK bool `json:"ok"`
}

func TestDoJSON_SingleAttemptByDefault(t *testing.T) {
	var calls int
	c := &Client{HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return respond(r, 500, "err"), nil
	}))}
	var out okResp
	err := c.DoJSON(context.Background(), http.MethodGet, "http://example.com", nil, &out)
	require.Error(t, err)
	require.Equal(t, 1, calls)

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, 500, serr.Code)
}

func TestDoJSON_Retry500Then200(t *testing.T) {
	var calls int
	c := &Client{MaxRetries: 2, HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return respond(r, 500, "err"), nil
		}
		return respond(r, 200, `{"ok": true}`), nil
	}))}
	var out okResp
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "http://example.com", nil, &out))
	require.True(t, out.OK)
	require.Equal(t, 2, calls)
}

type tempTimeoutErr struct{}

func (tempTimeoutErr) Error() string   { return "timeout" }
func (tempTimeoutErr) Timeout() bool   { return true }
func (tempTimeoutErr) Temporary() bool { return true }

func TestDoJSON_RetryNetTimeoutThen200(t *testing.T) {
	var calls int
	c := &Client{MaxRetries: 1, HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			var ne net.Error = tempTimeoutErr{}
			return nil, ne
		}
		return respond(r, 200, `{"ok": true}`), nil
	}))}
	var out okResp
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "http://example.com", nil, &out))
	require.True(t, out.OK)
}

func TestDoJSON_NoRetryOn400(t *testing.T) {
	var calls int
	c := &Client{MaxRetries: 3, HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return respond(r, 400, "bad"), nil
	}))}
	err := c.DoJSON(context.Background(), http.MethodGet, "http://example.com", nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad")
	require.Equal(t, 1, calls)
}

func TestDoJSON_DecodeError_NoRetry(t *testing.T) {
	var calls int
	c := &Client{MaxRetries: 3, HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewBufferString("{x")), Header: make(http.Header), Request: r}, nil
	}))}
	var out map[string]any
	err := c.DoJSON(context.Background(), http.MethodGet, "http://example.com", nil, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode")
	require.Equal(t, 1, calls)
}

func TestDoJSON_SignsBodyAndHeaders(t *testing.T) {
	var gotBody, signedBody string
	c := &Client{
		Header: http.Header{"X-Static": []string{"1"}},
		Sign: func(req *http.Request, body []byte) error {
			signedBody = string(body)
			req.Header.Set("X-Sig", "signed")
			return nil
		},
		HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			require.Equal(t, "signed", r.Header.Get("X-Sig"))
			require.Equal(t, "1", r.Header.Get("X-Static"))
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			return respond(r, 204, ""), nil
		})),
	}
	err := c.DoJSON(context.Background(), http.MethodPost, "http://example.com", []map[string]int{{"a": 1}}, nil)
	require.NoError(t, err)
	require.Equal(t, `[{"a":1}]`, gotBody)
	require.Equal(t, gotBody, signedBody)
}
