package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgconfig "github.com/zzhomeyofficial-web/syncstokzzhomey/pkg/config"
)

// Defaults for optional settings.
const (
	DefaultTimeoutSeconds = 30
	DefaultMaxWorkers     = 6
)

// MissingVarError reports an absent required environment variable. The
// entrypoint maps it to exit code 2.
type MissingVarError struct {
	Name string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("missing required environment variable: %s", e.Name)
}

// Config holds all configuration for the stock snapshot fetcher.
type Config struct {
	AppID     string `env:"BERDU_APP_ID"`
	AppSecret string `env:"BERDU_APP_SECRET"`
	UserID    string `env:"BERDU_USER_ID"`

	BaseURL     string `env:"BERDU_API_BASE_URL" envDefault:"https://api.berdu.id/v0.0"`
	WebsiteName string `env:"WEBSITE_NAME" envDefault:"zzhomey.com"`
	OutputPath  string `env:"OUTPUT_JSON_PATH" envDefault:"public/data/stock.json"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Kept as raw strings so malformed values fall back to defaults
	// instead of failing the run.
	TimeoutRaw    string `env:"BERDU_TIMEOUT_SECONDS" envDefault:"30"`
	MaxWorkersRaw string `env:"BERDU_MAX_WORKERS" envDefault:"6"`

	Timeout    time.Duration `env:"-"`
	MaxWorkers int           `env:"-"`
}

// Load reads configuration from environment variables. Required credentials
// missing yields *MissingVarError; malformed optional numbers silently fall
// back to their defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load syncstok config: %w", err)
	}

	for _, required := range []struct{ name, value string }{
		{"BERDU_APP_ID", cfg.AppID},
		{"BERDU_APP_SECRET", cfg.AppSecret},
		{"BERDU_USER_ID", cfg.UserID},
	} {
		if strings.TrimSpace(required.value) == "" {
			return nil, &MissingVarError{Name: required.name}
		}
	}

	cfg.Timeout = time.Duration(parsePositiveInt(cfg.TimeoutRaw, DefaultTimeoutSeconds)) * time.Second
	cfg.MaxWorkers = parsePositiveInt(cfg.MaxWorkersRaw, DefaultMaxWorkers)

	return cfg, nil
}

// parsePositiveInt parses raw as a positive integer, clamping to a minimum
// of 1 and falling back to def on anything unparseable.
func parsePositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	return n
}
