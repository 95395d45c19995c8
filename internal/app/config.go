package app

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/provider/cbr"
)

// Config holds the run configuration merged from the config file, the prior
// state file and environment overrides. Dates are fatal when syntactically
// invalid; the currency filter is coerced, never rejected.
type Config struct {
	DateStart  string   `json:"date_start" validate:"required,datetime=2006-01-02"`
	DateStop   string   `json:"date_stop" validate:"required,datetime=2006-01-02"`
	Currencies []string `json:"-"`

	BaseURL              string  `json:"base_url" validate:"omitempty,url"`
	MaxRetries           int     `json:"max_retries" validate:"min=1,max=100"`
	BaseDelaySeconds     float64 `json:"base_delay_seconds" validate:"min=0"`
	CourtesyDelaySeconds float64 `json:"courtesy_delay_seconds" validate:"min=0"`
	HTTPTimeoutSeconds   float64 `json:"http_timeout_seconds" validate:"min=0"`

	ArchiveDir    string `json:"archive_dir"`
	ArchiveFormat string `json:"archive_format" validate:"omitempty,oneof=csv json parquet"`

	LogLevel  string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format" validate:"omitempty,oneof=text json"`

	RunMode         string `json:"run_mode" validate:"omitempty,oneof=once daemon"`
	DaemonRunHour   int    `json:"daemon_run_hour" validate:"min=0,max=23"`
	DaemonRunMinute int    `json:"daemon_run_minute" validate:"min=0,max=59"`

	// StatePath is the -s file; daemon mode rewrites it after each run.
	StatePath string `json:"-"`
}

var validate = validator.New()

func defaultConfig() *Config {
	return &Config{
		BaseURL:              cbr.DefaultBaseURL,
		MaxRetries:           cbr.DefaultMaxRetries,
		BaseDelaySeconds:     cbr.DefaultBaseDelay.Seconds(),
		CourtesyDelaySeconds: 2,
		HTTPTimeoutSeconds:   60,
		ArchiveFormat:        "parquet",
		LogLevel:             "info",
		LogFormat:            "text",
		RunMode:              "once",
		DaemonRunHour:        0,
		DaemonRunMinute:      30,
	}
}

// LoadConfig reads the config file (when given) over built-in defaults and
// applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		cfg.Currencies = parseCurrencies(data)
	}
	applyEnv(cfg)
	return cfg, nil
}

// parseCurrencies pulls the optional currency filter out of the raw config.
// A value that is not a list of strings means "all currencies": logged as a
// warning, never fatal.
func parseCurrencies(data []byte) []string {
	var probe struct {
		Currencies json.RawMessage `json:"currencies"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	if len(probe.Currencies) == 0 || string(probe.Currencies) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(probe.Currencies, &list); err != nil {
		slog.Warn(`setting "currencies" is not a list of strings, ignoring`)
		return nil
	}
	return list
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TAP_CBR_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TAP_CBR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TAP_CBR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TAP_CBR_ARCHIVE_DIR"); v != "" {
		cfg.ArchiveDir = v
	}
	if v := os.Getenv("TAP_CBR_ARCHIVE_FORMAT"); v != "" {
		cfg.ArchiveFormat = v
	}
	if v := os.Getenv("TAP_CBR_RUN_MODE"); v != "" {
		cfg.RunMode = v
	}
	if h := os.Getenv("TAP_CBR_DAEMON_RUN_HOUR"); h != "" {
		if v, err := strconv.Atoi(h); err == nil && v >= 0 && v <= 23 {
			cfg.DaemonRunHour = v
		}
	}
	if m := os.Getenv("TAP_CBR_DAEMON_RUN_MINUTE"); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v >= 0 && v <= 59 {
			cfg.DaemonRunMinute = v
		}
	}
}

// ResolveDates applies the date precedence: config, then prior state, then
// yesterday (UTC).
func (c *Config) ResolveDates(prior model.State, now time.Time) {
	yesterday := now.UTC().AddDate(0, 0, -1).Format(model.DateFormat)
	if c.DateStart == "" {
		c.DateStart = prior.DateStart
	}
	if c.DateStart == "" {
		c.DateStart = yesterday
	}
	if c.DateStop == "" {
		c.DateStop = prior.DateStop
	}
	if c.DateStop == "" {
		c.DateStop = yesterday
	}
}

// Validate checks the resolved config. Note start > stop is allowed: the
// sync loop then performs zero iterations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dates returns the parsed range boundaries.
func (c *Config) Dates() (start, stop time.Time, err error) {
	start, err = time.Parse(model.DateFormat, c.DateStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date_start: %w", err)
	}
	stop, err = time.Parse(model.DateFormat, c.DateStop)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date_stop: %w", err)
	}
	return start, stop, nil
}

// BaseDelay returns the backoff base delay.
func (c *Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelaySeconds * float64(time.Second))
}

// CourtesyDelay returns the fixed per-day sleep.
func (c *Config) CourtesyDelay() time.Duration {
	return time.Duration(c.CourtesyDelaySeconds * float64(time.Second))
}

// HTTPTimeout returns the per-request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds * float64(time.Second))
}
