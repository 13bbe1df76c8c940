package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = map[string]bool{
	"bluegem_api_requests_total":           true,
	"bluegem_api_request_duration_seconds": true,
	"bluegem:api_requests:rate5m":          true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expr     string
		wantErr  bool
		wantWarn bool
	}{
		{name: "counter rate", expr: `rate(bluegem_api_requests_total{outcome="ok"}[5m])`},
		{name: "histogram bucket", expr: `histogram_quantile(0.95, sum(rate(bluegem_api_request_duration_seconds_bucket[5m])) by (le))`},
		{name: "recording rule", expr: `bluegem:api_requests:rate5m * 2`},
		{name: "unknown metric", expr: `rate(bluegem_missing_total[5m])`, wantErr: true},
		{name: "syntax error", expr: `sum(rate(bluegem_api_requests_total[5m])`, wantErr: true},
		{name: "no selectors", expr: `time()`, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Expr("panel", tt.expr, testMetrics)
			assert.Equal(t, !tt.wantErr, res.Ok(), "errors: %v", res.Errors)
			assert.Equal(t, tt.wantWarn, len(res.Warnings) > 0, "warnings: %v", res.Warnings)
		})
	}
}

func TestDashboard_CollectsNestedExprs(t *testing.T) {
	t.Parallel()

	dash := map[string]any{
		"title": "Test",
		"panels": []any{
			map[string]any{
				"title": "Row",
				"panels": []any{
					map[string]any{
						"title": "Requests",
						"targets": []any{
							map[string]any{"refId": "A", "expr": `bluegem:api_requests:rate5m`},
							map[string]any{"refId": "B", "expr": `rate(bluegem_unknown_total[5m])`},
						},
					},
				},
			},
		},
	}

	res := Dashboard(dash, testMetrics)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Requests/B")
	assert.Contains(t, res.Errors[0], "bluegem_unknown_total")
}

func TestDashboard_NoQueries(t *testing.T) {
	t.Parallel()

	res := Dashboard(map[string]any{"title": "Empty"}, testMetrics)
	assert.True(t, res.Ok())
	assert.NotEmpty(t, res.Warnings)
}
