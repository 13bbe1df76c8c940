// Package cmd implements the bluegem CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/bluegem/internal/config"
	"github.com/donaldgifford/bluegem/internal/metrics"
	"github.com/donaldgifford/bluegem/pkg/bluegem"
	"github.com/donaldgifford/bluegem/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "bluegem",
		Short: "CLI client for the CSBlueGem API",
		Long: "bluegem queries the CSBlueGem market-data API for Counter-Strike\n" +
			"item sales, pattern statistics and price estimates, and can watch\n" +
			"searches for new sales on a schedule.",
		SilenceUsage: true,
	}
)

// envKeyReplacer maps keys such as api.base_url to BLUEGEM_API_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file (default: built-in defaults)")
	pf.String("base-url", bluegem.DefaultBaseURL, "API base URL")
	pf.String("user-agent", "", "User-Agent header (default: bluegem-go/<version>)")
	pf.Duration("timeout", 0, "per-request timeout (default 30s)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")
	pf.StringP("output", "o", "table", "output format (table, json)")

	for key, flag := range map[string]string{
		"api.base_url":   "base-url",
		"api.user_agent": "user-agent",
		"api.timeout":    "timeout",
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"output":         "output",
	} {
		cobra.CheckErr(viper.BindPFlag(key, pf.Lookup(flag)))
	}

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(priceCheckCmd())
	rootCmd.AddCommand(itemsCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	// A missing .env file is normal; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	viper.SetEnvPrefix("BLUEGEM")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}

// loadConfig reads the YAML config, or the defaults when none is given, and
// applies flag and environment overrides on top.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if viper.IsSet("api.base_url") {
		cfg.API.BaseURL = viper.GetString("api.base_url")
	}
	if v := viper.GetString("api.user_agent"); v != "" {
		cfg.API.UserAgent = v
	}
	if v := viper.GetDuration("api.timeout"); v > 0 {
		cfg.API.Timeout = v
	}
	if v := viper.GetString("logging.level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		cfg.Logging.Format = v
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

// clientOptions builds the client options for cfg. The HTTP client carries
// the configured timeout.
func clientOptions(cfg *config.Config, log *slog.Logger) []bluegem.Option {
	return []bluegem.Option{
		bluegem.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		bluegem.WithBaseURL(cfg.API.BaseURL),
		bluegem.WithUserAgent(cfg.API.UserAgent),
		bluegem.WithLogger(log),
		bluegem.WithObserver(metrics.APIObserver{}),
	}
}

// withClient loads the configuration and runs fn with a scoped client.
func withClient(cmd *cobra.Command, fn func(*bluegem.Client) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return bluegem.With(cmd.Context(), fn, clientOptions(cfg, newLogger(cfg))...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
