package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const defaultSourceURL = "https://app.food2050.ch/de/v2/zfv/hslu,standort-rotkreuz/hslu-iandw/mittagsverpflegung/menu/weekly"

type rawCfg struct {
	// Source configuration
	SourceURL    string `long:"source-url" env:"SOURCE_URL" description:"URL of the weekly menu page"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"HTTP fetch timeout in seconds"`

	// Application configuration
	TargetsDir   string `long:"targets-dir" env:"TARGETS_DIR" default:"./targets" description:"Directory containing notification target configuration files"`
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./foodstoffi.db" description:"Path to the SQLite database file"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	NotifyAt     string `long:"notify-at" env:"NOTIFY_AT" default:"08:00" description:"UTC wall-clock time (HH:MM) of the daily menu announcement"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Foodstoffi/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone used to decide what 'today' means (e.g., UTC, Europe/Zurich)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourceURL:    cmp.Or(raw.SourceURL, defaultSourceURL),
		FetchTimeout: raw.FetchTimeout,
		TargetsDir:   raw.TargetsDir,
		DBPath:       raw.DBPath,
		Port:         raw.Port,
		NotifyAt:     raw.NotifyAt,
		APIAccessKey: raw.APIAccessKey,
		UserAgent:    raw.UserAgent,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if _, err := ParseNotifyAt(cfg.NotifyAt); err != nil {
		return nil, fmt.Errorf("invalid notify-at value %q: %w", cfg.NotifyAt, err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// ParseNotifyAt validates an "HH:MM" wall-clock value and returns it as
// a duration since midnight.
func ParseNotifyAt(value string) (time.Duration, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
