package saver

import (
	"strings"

	"github.com/epoch8/tap-cbr/internal/model"
)

// RowSaver is the abstraction for persisting one day's rate rows locally.
// High-level code injects the implementation; the tap depends only on the
// interface.
type RowSaver interface {
	Save(rows []model.RateRow, path string) error
	Extension() string
}

// NewRowSaver creates an implementation by format (csv, parquet, json).
// Returns nil if the format is not supported.
func NewRowSaver(format string) RowSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}
