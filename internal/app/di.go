package app

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/epoch8/tap-cbr/internal/provider"
	"github.com/epoch8/tap-cbr/internal/provider/cbr"
	"github.com/epoch8/tap-cbr/internal/saver"
	"github.com/epoch8/tap-cbr/internal/stream"
	"github.com/epoch8/tap-cbr/internal/tap"
)

// RunPaths carries the CLI file paths into the DI graph.
type RunPaths struct {
	ConfigPath string
	StatePath  string
}

// ProvideConfig loads config and prior state, resolves the date range and
// validates the result (for Wire).
func ProvideConfig(paths RunPaths) (*Config, error) {
	cfg, err := LoadConfig(paths.ConfigPath)
	if err != nil {
		return nil, err
	}
	prior, err := LoadState(paths.StatePath)
	if err != nil {
		return nil, err
	}
	cfg.StatePath = paths.StatePath
	cfg.ResolveDates(prior, time.Now())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideRowSaver creates the archive saver from config (for Wire).
// Returns a nil saver when archiving is disabled.
func ProvideRowSaver(cfg *Config) (saver.RowSaver, error) {
	if cfg.ArchiveDir == "" {
		return nil, nil
	}
	rs := saver.NewRowSaver(cfg.ArchiveFormat)
	if rs == nil {
		return nil, fmt.Errorf("unsupported archive_format %q (use: csv, parquet, json)", cfg.ArchiveFormat)
	}
	return rs, nil
}

// ProvideFetcher creates the CBR archive fetcher from config (for Wire).
func ProvideFetcher(cfg *Config) *cbr.Fetcher {
	return cbr.NewFetcher(cbr.Options{
		BaseURL:     cfg.BaseURL,
		MaxRetries:  cfg.MaxRetries,
		BaseDelay:   cfg.BaseDelay(),
		HTTPTimeout: cfg.HTTPTimeout(),
	})
}

// ProvideEmitter returns the production stream emitter on stdout (for Wire).
func ProvideEmitter() stream.Emitter {
	return stream.NewLineEmitter(os.Stdout)
}

// ProvideDriver wires the sync driver (for Wire).
func ProvideDriver(cfg *Config, src provider.RateSource, em stream.Emitter, rs saver.RowSaver) *tap.Driver {
	d := &tap.Driver{
		Source:        src,
		Emitter:       em,
		CourtesyDelay: cfg.CourtesyDelay(),
		RunID:         uuid.NewString(),
	}
	if rs != nil {
		d.Archiver = &tap.Archiver{Dir: cfg.ArchiveDir, Saver: rs}
	}
	return d
}
