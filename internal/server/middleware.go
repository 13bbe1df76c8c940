package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/bluegem/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// probeGauges maps probe paths to the gauge tracking their last result.
// Probe and scrape paths are excluded from request histograms.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics records request duration and status for every route except
// /metrics and the probes, which only update their up gauges.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if path == "/metrics" {
				return next(c)
			}
			if gauge, ok := probeGauges[path]; ok {
				err := next(c)
				gauge.Set(boolGauge(isSuccess(c.Response().Status)))
				return err
			}

			start := time.Now()
			err := next(c)

			labels := []string{c.Request().Method, path, strconv.Itoa(c.Response().Status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

// Recovery turns a handler panic into a logged 500 response.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)

				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", c.Get("request_id"),
					"stack", string(buf[:n]),
				)

				err = c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "internal server error",
				})
			}()
			return next(c)
		}
	}
}

// RequestLog logs each request with a request ID, taken from X-Request-ID or
// generated. Successful probes are logged once; after that only failures
// are logged so scrapers do not flood the output.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var probeLogged atomic.Bool

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			status := c.Response().Status
			path := c.Request().URL.Path
			if _, probe := probeGauges[path]; probe && isSuccess(status) && probeLogged.Swap(true) {
				return err
			}

			log.Info("request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func boolGauge(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
