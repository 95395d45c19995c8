//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/epoch8/tap-cbr/internal/app"
	"github.com/epoch8/tap-cbr/internal/provider"
	"github.com/epoch8/tap-cbr/internal/provider/cbr"
)

// InitializeApp builds App (Config + Driver + Source) via Wire.
// Caller must call a.Source.Close() when done.
func InitializeApp(paths app.RunPaths) (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideRowSaver,
		app.ProvideFetcher,
		app.ProvideEmitter,
		app.ProvideDriver,
		wire.Bind(new(provider.RateSource), new(*cbr.Fetcher)),
		wire.Struct(new(App), "Config", "Driver", "Source"),
	)
	return nil, nil
}
