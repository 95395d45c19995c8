package main

import (
	"github.com/epoch8/tap-cbr/internal/app"
	"github.com/epoch8/tap-cbr/internal/provider"
	"github.com/epoch8/tap-cbr/internal/tap"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Driver *tap.Driver
	Source provider.RateSource
}
