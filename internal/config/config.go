// Package config handles loading and validating the CLI configuration from
// YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// Config is the top-level configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Notify  NotifyConfig  `yaml:"notify"`
	Watches []WatchConfig `yaml:"watches"`
}

// APIConfig defines how the CSBlueGem API is reached.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig defines the listener serving /metrics and /healthz while
// watches run.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// NotifyConfig defines where new-sale alerts are delivered. With no webhook
// configured alerts are only logged.
type NotifyConfig struct {
	DiscordWebhookURL string        `yaml:"discord_webhook_url"`
	Timeout           time.Duration `yaml:"timeout"`
}

// WatchConfig defines one recurring search.
type WatchConfig struct {
	Name        string `yaml:"name"`
	Item        string `yaml:"item"`
	Schedule    string `yaml:"schedule"` // standard cron spec or @every descriptor
	Currency    string `yaml:"currency"`
	Pattern     *int   `yaml:"pattern"`
	Limit       int    `yaml:"limit"`
	PatternData bool   `yaml:"pattern_data"`
}

// Default returns a configuration with every default applied, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Metrics)
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = 10 * time.Second
	}
	for i := range cfg.Watches {
		applyWatchDefaults(&cfg.Watches[i])
	}
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = bluegem.DefaultBaseURL
	}
	if a.UserAgent == "" {
		a.UserAgent = bluegem.DefaultUserAgent()
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Listen == "" {
		m.Listen = "0.0.0.0:9464"
	}
}

func applyWatchDefaults(w *WatchConfig) {
	if w.Schedule == "" {
		w.Schedule = "@every 15m"
	}
	if w.Limit == 0 {
		w.Limit = 20
	}
}

func validate(cfg *Config) error {
	var errs []error

	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL (got %q)", cfg.API.BaseURL))
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative"))
	}

	if wh := cfg.Notify.DiscordWebhookURL; wh != "" {
		if u, err := url.Parse(wh); err != nil || u.Scheme != "https" && u.Scheme != "http" || u.Host == "" {
			errs = append(errs, fmt.Errorf("notify.discord_webhook_url must be an http(s) URL"))
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level,
		))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", cfg.Logging.Format,
		))
	}

	seen := make(map[string]bool, len(cfg.Watches))
	for i := range cfg.Watches {
		errs = append(errs, validateWatch(i, &cfg.Watches[i], seen)...)
	}

	return errors.Join(errs...)
}

func validateWatch(i int, w *WatchConfig, seen map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("watches[%d]", i)

	switch {
	case w.Name == "":
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	case seen[w.Name]:
		errs = append(errs, fmt.Errorf("%s.name %q is duplicated", prefix, w.Name))
	default:
		seen[w.Name] = true
	}

	if _, err := domain.ParseItem(w.Item); err != nil {
		errs = append(errs, fmt.Errorf("%s.item: %w", prefix, err))
	}
	if _, err := cron.ParseStandard(w.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("%s.schedule: %w", prefix, err))
	}
	if w.Currency != "" {
		if _, err := domain.ParseCurrency(w.Currency); err != nil {
			errs = append(errs, fmt.Errorf("%s.currency: %w", prefix, err))
		}
	}
	if !domain.ValidPattern(w.Pattern) {
		errs = append(errs, fmt.Errorf("%s.pattern must be %d <= N <= %d",
			prefix, domain.MinPattern, domain.MaxPattern))
	}
	if w.Limit < 0 {
		errs = append(errs, fmt.Errorf("%s.limit must not be negative", prefix))
	}

	return errs
}
