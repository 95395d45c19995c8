package saver

import (
	"github.com/parquet-go/parquet-go"

	"github.com/epoch8/tap-cbr/internal/model"
)

// ParquetSaver stores a day's rows as Parquet.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(rows []model.RateRow, path string) error {
	return parquet.WriteFile(path, rows)
}
