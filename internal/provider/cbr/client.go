package cbr

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// baseTransportConfig returns the shared HTTP transport configuration for
// archive requests. Keep-alives are off: only one request is ever in flight
// and consecutive days can be minutes apart once backoff kicks in.
func baseTransportConfig() *http.Transport {
	return &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       0,
		TLSHandshakeTimeout:   10 * time.Second,
		DisableKeepAlives:     true,
	}
}

// newRestyClient creates the HTTP client used for archive requests. Resty's
// built-in retry stays disabled; the retry policy belongs to the Fetcher.
func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTransport(baseTransportConfig()).
		SetTimeout(timeout).
		SetHeader("Connection", "close").
		SetRetryCount(0)
}
