package saver

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/epoch8/tap-cbr/internal/model"
)

// CSVSaver stores a day's rows as CSV (header: date,code,value,nominal).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(rows []model.RateRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "code", "value", "nominal"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			r.Date,
			r.Code,
			strconv.FormatFloat(r.Value, 'f', -1, 64),
			strconv.FormatInt(r.Nominal, 10),
		}); err != nil {
			return err
		}
	}
	return nil
}
