package main

import "errors"

// KnownMetrics is the set of metric names exported by the bluegem watch
// server plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// CSBlueGem API client.
	"bluegem_api_requests_total":           true,
	"bluegem_api_request_duration_seconds": true,

	// Watches.
	"bluegem_watch_runs_total":      true,
	"bluegem_watch_new_sales_total": true,
	"bluegem_watch_latest_price":    true,

	// Notifications.
	"bluegem_alerts_sent_total":             true,
	"bluegem_notification_failures_total":   true,
	"bluegem_notification_duration_seconds": true,

	// HTTP and health.
	"bluegem_http_request_duration_seconds": true,
	"bluegem_http_requests_total":           true,
	"bluegem_healthz_up":                    true,
	"bluegem_readyz_up":                     true,

	// Recording rules.
	"bluegem:api_requests:rate5m":          true,
	"bluegem:api_errors:rate5m":            true,
	"bluegem:http_requests:rate5m":         true,
	"bluegem:http_errors:rate5m":           true,
	"bluegem:watch_new_sales:increase1h":   true,
	"bluegem:notification_duration:p95_5m": true,

	// Standard Prometheus metrics.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
