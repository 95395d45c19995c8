package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/epoch8/tap-cbr/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxRetries != 10 {
		t.Errorf("MaxRetries = %d, want 10", cfg.MaxRetries)
	}
	if cfg.BaseDelay() != 10*time.Second {
		t.Errorf("BaseDelay = %v, want 10s", cfg.BaseDelay())
	}
	if cfg.CourtesyDelay() != 2*time.Second {
		t.Errorf("CourtesyDelay = %v, want 2s", cfg.CourtesyDelay())
	}
	if cfg.RunMode != "once" {
		t.Errorf("RunMode = %q", cfg.RunMode)
	}
}

func TestLoadConfigCurrencies(t *testing.T) {
	path := writeConfig(t, `{"currencies": ["USD", "EUR"]}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg.Currencies, []string{"USD", "EUR"}) {
		t.Errorf("Currencies = %v", cfg.Currencies)
	}
}

func TestLoadConfigCurrenciesCoerced(t *testing.T) {
	for _, raw := range []string{
		`{"currencies": "USD"}`,
		`{"currencies": 42}`,
		`{"currencies": [1, 2]}`,
		`{"currencies": null}`,
		`{}`,
	} {
		path := writeConfig(t, raw)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%s): %v", raw, err)
		}
		if cfg.Currencies != nil {
			t.Errorf("Currencies for %s = %v, want nil", raw, cfg.Currencies)
		}
	}
}

func TestResolveDatesPrecedence(t *testing.T) {
	now := time.Date(2023, 10, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name               string
		cfgStart, cfgStop  string
		state              model.State
		wantStart, wantStop string
	}{
		{
			name:     "config wins over state",
			cfgStart: "2023-10-01", cfgStop: "2023-10-02",
			state:     model.State{DateStart: "2023-09-01", DateStop: "2023-09-02"},
			wantStart: "2023-10-01", wantStop: "2023-10-02",
		},
		{
			name:      "state fills missing config",
			state:     model.State{DateStart: "2023-09-01", DateStop: "2023-09-02"},
			wantStart: "2023-09-01", wantStop: "2023-09-02",
		},
		{
			name:      "yesterday when both absent",
			wantStart: "2023-10-09", wantStop: "2023-10-09",
		},
		{
			name:     "mixed: config start, state stop",
			cfgStart: "2023-10-01",
			state:    model.State{DateStop: "2023-10-05"},
			wantStart: "2023-10-01", wantStop: "2023-10-05",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.DateStart = tt.cfgStart
			cfg.DateStop = tt.cfgStop
			cfg.ResolveDates(tt.state, now)
			if cfg.DateStart != tt.wantStart || cfg.DateStop != tt.wantStop {
				t.Errorf("resolved = (%s, %s), want (%s, %s)",
					cfg.DateStart, cfg.DateStop, tt.wantStart, tt.wantStop)
			}
		})
	}
}

func TestValidateRejectsBadDate(t *testing.T) {
	cfg := defaultConfig()
	cfg.DateStart = "05.10.2023"
	cfg.DateStop = "2023-10-05"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted a non-ISO date")
	}
}

func TestValidateAllowsStartAfterStop(t *testing.T) {
	cfg := defaultConfig()
	cfg.DateStart = "2023-10-06"
	cfg.DateStop = "2023-10-05"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v (start > stop means an empty range, not an error)", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAP_CBR_LOG_LEVEL", "debug")
	t.Setenv("TAP_CBR_ARCHIVE_DIR", "/tmp/rates")
	t.Setenv("TAP_CBR_DAEMON_RUN_HOUR", "7")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.ArchiveDir != "/tmp/rates" {
		t.Errorf("ArchiveDir = %q", cfg.ArchiveDir)
	}
	if cfg.DaemonRunHour != 7 {
		t.Errorf("DaemonRunHour = %d", cfg.DaemonRunHour)
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	want := model.State{DateStart: "2023-10-06", DateStop: "2023-10-07"}
	if err := SaveState(path, want); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	got, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
}

func TestLoadStateEmptyPath(t *testing.T) {
	got, err := LoadState("")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got != (model.State{}) {
		t.Errorf("state = %+v, want zero", got)
	}
}
