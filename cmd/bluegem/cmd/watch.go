package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/bluegem/internal/config"
	"github.com/donaldgifford/bluegem/internal/notify"
	"github.com/donaldgifford/bluegem/internal/server"
	"github.com/donaldgifford/bluegem/internal/watch"
	"github.com/donaldgifford/bluegem/pkg/bluegem"
)

const shutdownTimeout = 10 * time.Second

func watchCmd() *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll configured searches and report new sales",
		Long: "Runs the searches listed under `watches` in the config file on their\n" +
			"cron schedules, logging every sale not seen on a previous run.\n" +
			"Health, readiness and Prometheus metrics are served on metrics.listen.",
		Example: `  bluegem watch --config bluegem.yaml
  bluegem watch --config bluegem.yaml --run-now`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), runNow)
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "run every watch once at startup")

	return cmd
}

func runWatch(parent context.Context, runNow bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Watches) == 0 {
		return errors.New("no watches configured (add a `watches` section to the config file)")
	}
	log := newLogger(cfg)

	watches, err := watch.FromConfig(cfg.Watches)
	if err != nil {
		return err
	}

	client := bluegem.New(clientOptions(cfg, log)...)
	defer func() {
		if err := client.Close(); err != nil {
			log.Error("closing client", "error", err)
		}
	}()

	sched, err := watch.NewScheduler(client, watches, log, watch.WithNotifier(newNotifier(cfg, log)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Metrics.Listen, sched, log)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sched.Start()
	if runNow {
		runAll(ctx, sched, watches, log)
	}

	select {
	case <-ctx.Done():
		log.Info("received shutdown signal")
	case err = <-errCh:
		log.Error("server stopped unexpectedly", "error", err)
	}

	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Error("server shutdown error", "error", serr)
	}

	log.Info("watch stopped")
	return err
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notify.DiscordWebhookURL == "" {
		return notify.NewNoOpNotifier(log)
	}
	return notify.NewDiscordNotifier(
		cfg.Notify.DiscordWebhookURL,
		notify.WithHTTPClient(&http.Client{Timeout: cfg.Notify.Timeout}),
	)
}

func runAll(ctx context.Context, sched *watch.Scheduler, watches []watch.Watch, log *slog.Logger) {
	for _, w := range watches {
		if ctx.Err() != nil {
			return
		}
		if _, err := sched.RunNow(ctx, w.Name); err != nil {
			log.Error("initial watch run failed", "watch", w.Name, "error", err)
		}
	}
}
