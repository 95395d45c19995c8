package cbr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/provider"
)

const (
	// DefaultBaseURL is the public CBR daily JSON archive host.
	DefaultBaseURL = "https://www.cbr-xml-daily.ru"

	// DefaultMaxRetries bounds the attempts for one day.
	DefaultMaxRetries = 10

	// DefaultBaseDelay seeds the backoff schedule: 10s, 20s, 40s, ...
	DefaultBaseDelay = 10 * time.Second

	defaultHTTPTimeout = 60 * time.Second

	// archivePathLayout turns a day into the per-day archive path via
	// time.Format: /archive/2023/10/05/daily_json.js
	archivePathLayout = "/archive/2006/01/02/daily_json.js"

	// bodySnippetLen caps response bodies quoted in log lines.
	bodySnippetLen = 200
)

// Options configure a Fetcher. Zero values fall back to the defaults above.
type Options struct {
	BaseURL     string
	MaxRetries  int
	BaseDelay   time.Duration
	HTTPTimeout time.Duration
}

// Fetcher retrieves per-day rate snapshots from the CBR daily JSON archive,
// hiding transient network and service instability behind a bounded
// exponential-backoff retry policy.
type Fetcher struct {
	client     *resty.Client
	classifier Classifier
	maxRetries int
	baseDelay  time.Duration
}

// NewFetcher constructs a Fetcher with a shared HTTP client and the default
// marker-text classifier.
func NewFetcher(opts Options) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = defaultHTTPTimeout
	}
	return &Fetcher{
		client:     newRestyClient(opts.BaseURL, opts.HTTPTimeout),
		classifier: markerClassifier{},
		maxRetries: opts.MaxRetries,
		baseDelay:  opts.BaseDelay,
	}
}

// SetClassifier replaces the attempt classifier.
func (f *Fetcher) SetClassifier(c Classifier) {
	if c != nil {
		f.classifier = c
	}
}

// Name returns the source name.
func (f *Fetcher) Name() string { return "cbr-xml-daily" }

// Close closes connections.
func (f *Fetcher) Close() error { return nil }

// newSchedule returns the deterministic per-day backoff schedule:
// baseDelay * 2^attempt, no jitter, no interval cap below the attempt bound.
func (f *Fetcher) newSchedule() *backoff.ExponentialBackOff {
	shift := uint(f.maxRetries)
	if shift > 20 {
		shift = 20 // keep the interval cap out of overflow territory
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.baseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = f.baseDelay << shift
	return b
}

// FetchDay implements provider.RateSource. It returns provider.ErrNoData when
// the archive says no rate exists for the day and provider.ErrExhausted when
// every attempt failed with a retryable condition.
func (f *Fetcher) FetchDay(ctx context.Context, day time.Time) (*model.DailyRates, error) {
	dateStr := day.Format(model.DateFormat)
	path := day.Format(archivePathLayout)
	schedule := f.newSchedule()

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		resp, err := f.client.R().SetContext(ctx).Get(path)
		if err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var status int
		var body string
		if err == nil {
			status = resp.StatusCode()
			body = resp.String()
		}

		switch f.classifier.Classify(status, body, err) {
		case OutcomeNoData:
			slog.Warn("no rate published", "date", dateStr, "body", snippet(body))
			return nil, provider.ErrNoData
		case OutcomeSuccess:
			rates, derr := decodeSnapshot(resp.Body())
			if derr == nil {
				return rates, nil
			}
			// A 200 that does not parse is treated like any other
			// retryable condition.
			err = derr
		}

		delay := schedule.NextBackOff()
		if delay == backoff.Stop {
			delay = f.baseDelay
		}
		if err != nil {
			slog.Info("fetch attempt failed",
				"date", dateStr, "attempt", attempt+1, "error", err, "retry_in", delay)
		} else {
			slog.Info("unexpected archive response",
				"date", dateStr, "attempt", attempt+1, "url", resp.Request.URL,
				"status", status, "body", snippet(body), "retry_in", delay)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	slog.Warn("giving up on date", "date", dateStr, "attempts", f.maxRetries)
	return nil, provider.ErrExhausted
}

func decodeSnapshot(data []byte) (*model.DailyRates, error) {
	var rates model.DailyRates
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &rates, nil
}

func snippet(body string) string {
	if len(body) > bodySnippetLen {
		return body[:bodySnippetLen]
	}
	return body
}
