// Package tap orchestrates the date-range synchronization: it walks the
// range day by day, normalizes fetched snapshots into flat records and emits
// schema, records and advanced state on the outbound stream.
package tap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/provider"
	"github.com/epoch8/tap-cbr/internal/stream"
)

// DefaultCourtesyDelay is the fixed sleep before each day's fetch, a courtesy
// to the rate-limit-free archive host.
const DefaultCourtesyDelay = 2 * time.Second

// Driver runs one full date-range synchronization against a rate source and
// writes the resulting stream.
type Driver struct {
	Source        provider.RateSource
	Emitter       stream.Emitter
	Archiver      *Archiver     // when non-nil, snapshots are also saved locally
	CourtesyDelay time.Duration // sleep before each day's fetch
	RunID         string
}

// Sync iterates every day of [start, stop] inclusive in order, fetches each
// snapshot and, when anything was produced, emits schema + records + advanced
// state. The returned state is nil when no records were emitted. Day-level
// failures are absorbed: a day that yields no data or exhausts its retries is
// skipped, never fatal.
func (d *Driver) Sync(ctx context.Context, start, stop time.Time, currencies []string) (*model.State, error) {
	if len(currencies) > 0 {
		slog.Info("currencies specified", "currencies", currencies)
	}

	var (
		records   []model.Record
		processed []string
		skipped   []skipEntry
	)
	state := model.State{
		DateStart: start.Format(model.DateFormat),
		DateStop:  stop.Format(model.DateFormat),
	}

	for day := start; !day.After(stop); day = day.AddDate(0, 0, 1) {
		if err := sleepCtx(ctx, d.CourtesyDelay); err != nil {
			return nil, err
		}
		dateStr := day.Format(model.DateFormat)
		slog.Info("date to process", "date", dateStr, "run_id", d.RunID)

		snapshot, err := d.Source.FetchDay(ctx, day)
		switch {
		case errors.Is(err, provider.ErrNoData):
			skipped = append(skipped, skipEntry{Date: dateStr, Reason: "no rate published"})
			continue
		case errors.Is(err, provider.ErrExhausted):
			skipped = append(skipped, skipEntry{Date: dateStr, Reason: "retries exhausted"})
			continue
		case err != nil:
			return nil, fmt.Errorf("fetch %s: %w", dateStr, err)
		}
		if len(snapshot.Valute) == 0 {
			skipped = append(skipped, skipEntry{Date: dateStr, Reason: "empty snapshot"})
			continue
		}

		records = append(records, buildRecord(dateStr, snapshot, currencies))
		processed = append(processed, dateStr)
		d.Archiver.SaveDay(dateStr, snapshot)
	}

	d.writeReport(processed, skipped)

	if len(records) == 0 {
		slog.Info(completionMessage("tap completed successfully (nothing done, no new data)."))
		return nil, nil
	}

	// The schema reflects the last record's key set; earlier records may
	// carry keys the schema omits when the filter was empty and the set of
	// published currencies changed mid-range.
	last := records[len(records)-1]
	if err := d.Emitter.WriteSchema(StreamName, makeSchema(last), []string{"date"}); err != nil {
		return nil, fmt.Errorf("write schema: %w", err)
	}
	for _, rec := range records {
		if err := d.Emitter.WriteRecord(StreamName, rec); err != nil {
			return nil, fmt.Errorf("write record: %w", err)
		}
		recDay, err := time.Parse(model.DateFormat, rec["date"].(string))
		if err != nil {
			return nil, fmt.Errorf("parse record date: %w", err)
		}
		state.DateStart = recDay.AddDate(0, 0, 1).Format(model.DateFormat)
	}
	state.DateStop = stop.AddDate(0, 0, 1).Format(model.DateFormat)
	if err := d.Emitter.WriteState(state); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}

	slog.Info(completionMessage(fmt.Sprintf("tap completed successfully rows=%d", len(records))))
	return &state, nil
}

// buildRecord flattens one snapshot into a wide record. With a filter, every
// filtered code gets a value and a nominal entry, nil when the code is absent
// that day; without one, every published code is included.
func buildRecord(date string, snapshot *model.DailyRates, currencies []string) model.Record {
	rec := model.Record{"date": date}
	if len(currencies) > 0 {
		for _, code := range currencies {
			if q, ok := snapshot.Valute[code]; ok {
				rec[code] = q.Value
				rec[code+"_Nominal"] = q.Nominal
			} else {
				rec[code] = nil
				rec[code+"_Nominal"] = nil
			}
		}
		return rec
	}
	for code, q := range snapshot.Valute {
		rec[code] = q.Value
		rec[code+"_Nominal"] = q.Nominal
	}
	return rec
}

// completionMessage renders the final log line as a JSON object so log
// scrapers can pick it up regardless of handler format.
func completionMessage(msg string) string {
	data, _ := json.Marshal(map[string]string{"message": msg})
	return string(data)
}

// sleepCtx blocks for dur or until ctx is done.
func sleepCtx(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(dur):
		return nil
	}
}
