// Package metrics defines Prometheus metrics for bluegem.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
)

const namespace = "bluegem"

// CSBlueGem API metrics.
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of CSBlueGem API requests by route, status and outcome.",
	}, []string{"route", "status", "outcome"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of CSBlueGem API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// Watch metrics.
var (
	WatchRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watch_runs_total",
		Help:      "Total number of watch runs by result.",
	}, []string{"watch", "result"})

	WatchNewSalesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watch_new_sales_total",
		Help:      "Total number of sales first seen by a watch.",
	}, []string{"watch"})

	WatchLatestPrice = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "watch_latest_price",
		Help:      "Price of the most recent sale seen by a watch, in the watch currency.",
	}, []string{"watch"})
)

// Notification metrics.
var (
	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of webhook deliveries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	AlertsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_sent_total",
		Help:      "Total number of new-sale alerts delivered.",
	}, []string{"watch"})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of failed alert deliveries.",
	})
)

// HTTP metrics for the watch server.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded.",
	})
)

// APIObserver records every CSBlueGem API request.
type APIObserver struct{}

var _ bluegem.Observer = APIObserver{}

// ObserveRequest implements bluegem.Observer.
func (APIObserver) ObserveRequest(route bluegem.Route, status int, outcome string, elapsed time.Duration) {
	r := route.Path()
	APIRequestsTotal.WithLabelValues(r, strconv.Itoa(status), outcome).Inc()
	APIRequestDuration.WithLabelValues(r).Observe(elapsed.Seconds())
}
