package app

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/model"
)

// LoadState reads the prior run state file. An empty path returns an empty
// state.
func LoadState(path string) (model.State, error) {
	if path == "" {
		return model.State{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.State{}, fmt.Errorf("read state: %w", err)
	}
	var st model.State
	if err := json.Unmarshal(data, &st); err != nil {
		return model.State{}, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

// SaveState rewrites the state file; daemon mode uses it to carry progress
// across host restarts.
func SaveState(path string, st model.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
