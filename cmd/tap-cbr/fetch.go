package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/subcommands"
	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/app"
	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/provider"
)

// fetchCmd retrieves a single day's snapshot and prints it raw, useful when
// debugging the archive endpoint or a classifier mismatch.
type fetchCmd struct {
	configPath string
	date       string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch one day's raw snapshot" }
func (*fetchCmd) Usage() string {
	return `fetch [-c config.json] [-date YYYY-MM-DD]:
  Fetch a single day's snapshot and print the raw JSON. Defaults to yesterday.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "c", "", "config file")
	f.StringVar(&c.date, "date", "", "date to fetch (YYYY-MM-DD, default yesterday)")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := app.LoadConfig(c.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return subcommands.ExitFailure
	}

	day := time.Now().UTC().AddDate(0, 0, -1)
	if c.date != "" {
		day, err = time.Parse(model.DateFormat, c.date)
		if err != nil {
			slog.Error("invalid -date", "error", err)
			return subcommands.ExitUsageError
		}
	}

	source := app.ProvideFetcher(cfg)
	defer source.Close()

	snapshot, err := source.FetchDay(ctx, day)
	switch {
	case errors.Is(err, provider.ErrNoData):
		slog.Warn("no rate published", "date", day.Format(model.DateFormat))
		return subcommands.ExitSuccess
	case err != nil:
		slog.Error("fetch failed", "date", day.Format(model.DateFormat), "error", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		slog.Error("encode snapshot", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
