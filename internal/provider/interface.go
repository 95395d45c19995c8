package provider

import (
	"context"
	"errors"
	"time"

	"github.com/epoch8/tap-cbr/internal/model"
)

// ErrNoData reports that the source authoritatively has no published rate for
// the requested day. It is a valid empty result, not a failure.
var ErrNoData = errors.New("no rate published for date")

// ErrExhausted reports that every fetch attempt for a day failed with a
// retryable condition.
var ErrExhausted = errors.New("retries exhausted")

// RateSource is the abstraction used by the sync driver when accessing a rate
// archive. Implementations own their retry logic and resource cleanup.
type RateSource interface {
	Name() string
	// FetchDay returns the published snapshot for one calendar day.
	// Terminal non-success results are ErrNoData and ErrExhausted.
	FetchDay(ctx context.Context, day time.Time) (*model.DailyRates, error)
	Close() error
}
