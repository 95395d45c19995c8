package cbr

import (
	"net/http"
	"strings"
)

// Outcome is the classification of a single fetch attempt.
type Outcome int

const (
	// OutcomeSuccess means the body is a usable snapshot.
	OutcomeSuccess Outcome = iota
	// OutcomeNoData means the archive authoritatively has no rate for the day.
	OutcomeNoData
	// OutcomeRetryable means a transport failure or an unexpected status.
	OutcomeRetryable
)

// Classifier decides what a single attempt against the archive meant. The
// archive has no structured error contract, so the default implementation
// keys on marker text in the body; swapping the Classifier is the seam for a
// structured signal should the upstream ever grow one.
type Classifier interface {
	Classify(statusCode int, body string, err error) Outcome
}

// noRateMarker is the exact phrase the archive returns when no rate exists
// for the requested day or the date itself is bogus. Any change to the
// upstream wording breaks this match.
const noRateMarker = "Курс ЦБ РФ на данную дату не установлен или указана ошибочная дата."

// markerClassifier implements the marker-text rule: transport error is
// retryable; marker present wins regardless of status; 200 without marker is
// success; any other status is retryable.
type markerClassifier struct{}

func (markerClassifier) Classify(statusCode int, body string, err error) Outcome {
	if err != nil {
		return OutcomeRetryable
	}
	if strings.Contains(body, noRateMarker) {
		return OutcomeNoData
	}
	if statusCode == http.StatusOK {
		return OutcomeSuccess
	}
	return OutcomeRetryable
}
