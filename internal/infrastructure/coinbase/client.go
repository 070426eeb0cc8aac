package coinbase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wallet-balances-reporter/internal/infrastructure/httpx"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://api.pro.coinbase.com"

// Client talks to the Coinbase Pro REST API. Private endpoints are signed with
// the CB-ACCESS-* headers.
type Client struct {
	baseURL    string
	key        string
	secret     string
	passphrase string
	http       *httpx.Client
	now        func() time.Time
}

func NewClient(baseURL, key, secret, passphrase string, hc *http.Client, maxRetries uint64) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		key:        key,
		secret:     secret,
		passphrase: passphrase,
		http:       &httpx.Client{HTTP: hc, MaxRetries: maxRetries},
		now:        time.Now,
	}
}

func (c *Client) get(ctx context.Context, path string, signed bool, out any) error {
	hc := c.http
	if signed {
		if c.key == "" || c.secret == "" || c.passphrase == "" {
			return errors.New("coinbase: missing api credentials")
		}
		cp := *c.http
		cp.Sign = c.sign
		hc = &cp
	}
	return hc.DoJSON(ctx, http.MethodGet, c.baseURL+path, nil, out)
}

func (c *Client) sign(req *http.Request, body []byte) error {
	ts := strconv.FormatInt(c.now().Unix(), 10)
	sig, err := Signature(c.secret, ts, req.Method, requestPath(req.URL), body)
	if err != nil {
		return err
	}
	req.Header.Set("CB-ACCESS-KEY", c.key)
	req.Header.Set("CB-ACCESS-SIGN", sig)
	req.Header.Set("CB-ACCESS-TIMESTAMP", ts)
	req.Header.Set("CB-ACCESS-PASSPHRASE", c.passphrase)
	return nil
}

// Signature is base64(HMAC-SHA256(base64decode(secret), timestamp+method+path+body)).
func Signature(secret, timestamp, method, path string, body []byte) (string, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", errors.Wrap(err, "coinbase: decode api secret")
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(timestamp + strings.ToUpper(method) + path))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func requestPath(u *url.URL) string {
	if u.RawQuery == "" {
		return u.EscapedPath()
	}
	return u.EscapedPath() + "?" + u.RawQuery
}
