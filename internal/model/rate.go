package model

import "sort"

// DateFormat is the ISO calendar-date layout used for config, state and
// record dates.
const DateFormat = "2006-01-02"

// Quote is one currency entry of the daily archive response. Normalization
// consumes only Value and Nominal; the remaining fields are kept for the
// fetch debug command and the local archive.
type Quote struct {
	ID       string  `json:"ID"`
	NumCode  string  `json:"NumCode"`
	CharCode string  `json:"CharCode"`
	Nominal  int64   `json:"Nominal"`
	Name     string  `json:"Name"`
	Value    float64 `json:"Value"`
	Previous float64 `json:"Previous"`
}

// DailyRates is the archive response for one calendar day: metadata plus the
// Valute map keyed by currency code.
type DailyRates struct {
	Date         string           `json:"Date"`
	PreviousDate string           `json:"PreviousDate"`
	PreviousURL  string           `json:"PreviousURL"`
	Timestamp    string           `json:"Timestamp"`
	Valute       map[string]Quote `json:"Valute"`
}

// Rows flattens the snapshot into long-format archive rows for the given
// record date, sorted by currency code so files are deterministic.
func (d *DailyRates) Rows(date string) []RateRow {
	rows := make([]RateRow, 0, len(d.Valute))
	for code, q := range d.Valute {
		rows = append(rows, RateRow{Date: date, Code: code, Value: q.Value, Nominal: q.Nominal})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows
}

// Record is one flattened per-day output row: "date" plus a <CODE> value
// entry and a <CODE>_Nominal entry for each relevant currency. nil entries
// marshal to JSON null.
type Record map[string]any

// RateRow is the long-format archive row, one per currency per day.
// Shared by saver serialization (json, csv, parquet).
type RateRow struct {
	Date    string  `json:"date" parquet:"date"`
	Code    string  `json:"code" parquet:"code"`
	Value   float64 `json:"value" parquet:"value"`
	Nominal int64   `json:"nominal" parquet:"nominal"`
}

// State tracks sync progress across runs: the next unprocessed start date and
// the advanced stop boundary.
type State struct {
	DateStart string `json:"date_start"`
	DateStop  string `json:"date_stop"`
}
