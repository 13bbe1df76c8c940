package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/bluegem/internal/metrics"
	"github.com/donaldgifford/bluegem/internal/notify"
	"github.com/donaldgifford/bluegem/pkg/bluegem"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// ErrNotStarted is returned by Ready before Start is called.
var ErrNotStarted = errors.New("scheduler not started")

// SaleHandler is called once for every sale a watch sees for the first time.
type SaleHandler func(ctx context.Context, w Watch, sale domain.Sale)

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithSaleHandler sets the handler for new sales. By default new sales are
// logged at info level.
func WithSaleHandler(h SaleHandler) Option {
	return func(s *Scheduler) {
		s.onSale = h
	}
}

// WithNotifier sends an alert for the new sales of every run.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Scheduler) {
		s.notifier = n
	}
}

// WithRunTimeout bounds each watch run. Default: one minute.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.runTimeout = d
	}
}

// state is what a watch remembers between runs.
type state struct {
	newest time.Time
	keys   map[string]struct{}
}

// Scheduler runs watches on their cron schedules.
type Scheduler struct {
	cron       *cron.Cron
	api        bluegem.API
	log        *slog.Logger
	watches    map[string]Watch
	onSale     SaleHandler
	notifier   notify.Notifier
	runTimeout time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	started atomic.Bool

	mu    sync.Mutex
	state map[string]*state
}

// NewScheduler creates a Scheduler with one cron entry per watch.
func NewScheduler(
	api bluegem.API,
	watches []Watch,
	log *slog.Logger,
	opts ...Option,
) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:       cron.New(),
		api:        api,
		log:        log,
		watches:    make(map[string]Watch, len(watches)),
		runTimeout: time.Minute,
		ctx:        ctx,
		cancel:     cancel,
		state:      make(map[string]*state, len(watches)),
	}
	s.onSale = s.logSale
	for _, opt := range opts {
		opt(s)
	}

	for _, w := range watches {
		if _, dup := s.watches[w.Name]; dup {
			cancel()
			return nil, fmt.Errorf("duplicate watch name %q", w.Name)
		}
		s.watches[w.Name] = w

		if _, err := s.cron.AddFunc(w.Schedule, func() { s.runScheduled(w) }); err != nil {
			cancel()
			return nil, fmt.Errorf("scheduling watch %q: %w", w.Name, err)
		}
	}

	return s, nil
}

// Start begins running scheduled watches.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "watches", len(s.watches))
	s.cron.Start()
	s.started.Store(true)
}

// Stop cancels in-flight runs and stops the scheduler. The returned context
// is done once running jobs have returned.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	s.started.Store(false)
	s.cancel()
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Ready reports whether the scheduler is running.
func (s *Scheduler) Ready(context.Context) error {
	if !s.started.Load() {
		return ErrNotStarted
	}
	return nil
}

// RunNow runs the named watch immediately and returns the number of new
// sales it reported.
func (s *Scheduler) RunNow(ctx context.Context, name string) (int, error) {
	w, ok := s.watches[name]
	if !ok {
		return 0, fmt.Errorf("unknown watch %q", name)
	}
	return s.run(ctx, w)
}

func (s *Scheduler) runScheduled(w Watch) {
	ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()

	if _, err := s.run(ctx, w); err != nil {
		s.log.Error("watch run failed", "watch", w.Name, "error", err)
	}
}

func (s *Scheduler) run(ctx context.Context, w Watch) (int, error) {
	opts := w.Options
	resp, err := s.api.Search(ctx, w.Item, &opts)
	if err != nil {
		metrics.WatchRunsTotal.WithLabelValues(w.Name, "error").Inc()
		return 0, err
	}

	fresh, first := s.diff(w.Name, resp.Sales)
	metrics.WatchRunsTotal.WithLabelValues(w.Name, "ok").Inc()

	if len(resp.Sales) > 0 {
		metrics.WatchLatestPrice.WithLabelValues(w.Name).Set(resp.Sales[0].Price.InexactFloat64())
	}

	if first {
		s.log.Info("watch baseline recorded", "watch", w.Name, "sales", len(resp.Sales), "total", resp.Meta.Total)
		return 0, nil
	}

	for _, sale := range fresh {
		s.onSale(ctx, w, sale)
	}
	metrics.WatchNewSalesTotal.WithLabelValues(w.Name).Add(float64(len(fresh)))
	s.sendAlerts(ctx, w, fresh)

	s.log.Debug("watch run complete", "watch", w.Name, "sales", len(resp.Sales), "new", len(fresh))
	return len(fresh), nil
}

// diff records sales as seen and returns those not seen before. first is
// true on the initial run of a watch, whose sales only form the baseline.
func (s *Scheduler) diff(name string, sales []domain.Sale) (fresh []domain.Sale, first bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.state[name]
	next := &state{keys: make(map[string]struct{}, len(sales))}
	if ok {
		next.newest = prev.newest
	}

	for i := range sales {
		sale := sales[i]
		key := saleKey(&sale)
		next.keys[key] = struct{}{}

		if sale.Timestamp.After(next.newest) {
			next.newest = sale.Timestamp
		}
		if !ok {
			continue
		}
		if _, seen := prev.keys[key]; seen || sale.Timestamp.Before(prev.newest) {
			continue
		}
		fresh = append(fresh, sale)
	}

	s.state[name] = next
	return fresh, !ok
}

// sendAlerts delivers fresh sales to the notifier. Delivery failures are
// logged and counted but do not fail the run.
func (s *Scheduler) sendAlerts(ctx context.Context, w Watch, fresh []domain.Sale) {
	if s.notifier == nil || len(fresh) == 0 {
		return
	}

	alerts := make([]notify.SaleAlert, len(fresh))
	for i := range fresh {
		alerts[i] = notify.SaleAlert{
			WatchName: w.Name,
			Item:      w.Item,
			Currency:  w.Options.Currency,
			Sale:      fresh[i],
		}
	}

	var err error
	if len(alerts) == 1 {
		err = s.notifier.SendAlert(ctx, &alerts[0])
	} else {
		err = s.notifier.SendBatchAlert(ctx, alerts, w.Name)
	}
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
		s.log.Warn("sending alerts failed", "watch", w.Name, "count", len(alerts), "error", err)
		return
	}
	metrics.AlertsSentTotal.WithLabelValues(w.Name).Add(float64(len(alerts)))
}

func saleKey(s *domain.Sale) string {
	return string(s.Origin) + "|" + strconv.FormatInt(s.Timestamp.UnixNano(), 10) + "|" + s.SteamInspectLink
}

func (s *Scheduler) logSale(ctx context.Context, w Watch, sale domain.Sale) {
	s.log.InfoContext(ctx, "new sale",
		"watch", w.Name,
		"item", string(w.Item),
		"pattern", sale.Pattern,
		"wear", sale.Wear,
		"price", sale.Price.String(),
		"origin", string(sale.Origin),
		"date", sale.Timestamp.Format(time.RFC3339),
	)
}
