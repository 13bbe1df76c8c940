package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, APIRequestsTotal)
	assert.NotNil(t, APIRequestDuration)
	assert.NotNil(t, WatchRunsTotal)
	assert.NotNil(t, WatchNewSalesTotal)
	assert.NotNil(t, WatchLatestPrice)
	assert.NotNil(t, NotificationDuration)
	assert.NotNil(t, AlertsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
}

func TestAPIObserver(t *testing.T) {
	t.Parallel()

	route := bluegem.NewRoute(http.MethodGet, "/observer-test")
	counter := APIRequestsTotal.WithLabelValues("/observer-test", "503", "server_error")
	before := testutil.ToFloat64(counter)

	var obs bluegem.Observer = APIObserver{}
	obs.ObserveRequest(route, http.StatusServiceUnavailable, "server_error", 250*time.Millisecond)
	obs.ObserveRequest(route, http.StatusServiceUnavailable, "server_error", 50*time.Millisecond)

	assert.InDelta(t, before+2, testutil.ToFloat64(counter), 0.001)
	assert.Equal(t, 0.0, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("/observer-test", "200", "ok")))
}
