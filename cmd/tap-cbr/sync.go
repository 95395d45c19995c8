package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"

	"github.com/epoch8/tap-cbr/internal/app"
	"github.com/epoch8/tap-cbr/internal/slogx"
)

type syncCmd struct {
	configPath string
	statePath  string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "run the date-range synchronization" }
func (*syncCmd) Usage() string {
	return `sync [-c config.json] [-s state.json]:
  Fetch daily rate snapshots and emit the Singer stream on stdout.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "c", "", "config file")
	f.StringVar(&c.statePath, "s", "", "state file")
}

func (c *syncCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := InitializeApp(app.RunPaths{ConfigPath: c.configPath, StatePath: c.statePath})
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	defer a.Source.Close()

	slog.SetDefault(slogx.New(a.Config.LogLevel, a.Config.LogFormat))
	slog.Info("using rate source", "source", a.Source.Name(), "run_id", a.Driver.RunID,
		"date_start", a.Config.DateStart, "date_stop", a.Config.DateStop)

	var runErr error
	if a.Config.RunMode == "daemon" {
		runErr = app.RunDaemon(a.Config, a.Driver)
	} else {
		runErr = app.RunOnce(ctx, a.Config, a.Driver)
	}
	if runErr != nil {
		slog.Error("sync failed", "error", runErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
