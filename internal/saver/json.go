package saver

import (
	"os"

	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/model"
)

// JSONSaver stores a day's rows as an indented JSON array.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(rows []model.RateRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
