package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/tap"
)

// RunOnce executes a single sync over the configured range. State reaches the
// consumer through the emitted STATE message only.
func RunOnce(ctx context.Context, cfg *Config, d *tap.Driver) error {
	start, stop, err := cfg.Dates()
	if err != nil {
		return err
	}
	_, err = d.Sync(ctx, start, stop, cfg.Currencies)
	return err
}

// RunDaemon reruns the sync daily at the configured UTC time, carrying the
// advanced state between iterations and rewriting the state file when one was
// given. SIGINT/SIGTERM stops the loop between runs.
func RunDaemon(cfg *Config, d *tap.Driver) error {
	prior := model.State{DateStart: cfg.DateStart, DateStop: cfg.DateStop}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		start, err := time.Parse(model.DateFormat, prior.DateStart)
		if err != nil {
			return fmt.Errorf("parse date_start: %w", err)
		}
		stop, err := time.Parse(model.DateFormat, prior.DateStop)
		if err != nil {
			return fmt.Errorf("parse date_stop: %w", err)
		}

		final, err := d.Sync(context.Background(), start, stop, cfg.Currencies)
		if err != nil {
			return err
		}
		if final != nil {
			prior = *final
			if cfg.StatePath != "" {
				if werr := SaveState(cfg.StatePath, prior); werr != nil {
					slog.Warn("state file write failed", "path", cfg.StatePath, "error", werr)
				}
			}
		}

		next := nextRunTime(cfg, time.Now())
		wait := time.Until(next)
		if wait <= 0 {
			slog.Info("next run passed, running now", "next_run", next.Format("2006-01-02 15:04"))
			continue
		}
		slog.Info("timer waiting", "hours", wait.Hours(), "until", next.Format("2006-01-02 15:04"))
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case sig := <-signals:
			slog.Info("received signal, stopping", "sig", sig.String())
			timer.Stop()
			return nil
		}
	}
}

func nextRunTime(cfg *Config, now time.Time) time.Time {
	now = now.UTC()
	hour, min := cfg.DaemonRunHour, cfg.DaemonRunMinute
	targetToday := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.UTC)
	if now.Before(targetToday) {
		return targetToday
	}
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, min, 0, 0, time.UTC)
}
