package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newRule("bluegem-recording-rules", RuleGroup{
		Name: "bluegem-recording",
		Rules: []Rule{
			{
				Record: "bluegem:api_requests:rate5m",
				Expr:   `sum(rate(bluegem_api_requests_total[5m])) by (route)`,
			},
			{
				Record: "bluegem:api_errors:rate5m",
				Expr:   `sum(rate(bluegem_api_requests_total{outcome!="ok"}[5m])) by (route, outcome)`,
			},
			{
				Record: "bluegem:http_requests:rate5m",
				Expr:   `sum(rate(bluegem_http_requests_total[5m]))`,
			},
			{
				Record: "bluegem:http_errors:rate5m",
				Expr:   `sum(rate(bluegem_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "bluegem:watch_new_sales:increase1h",
				Expr:   `sum(increase(bluegem_watch_new_sales_total[1h])) by (watch)`,
			},
			{
				Record: "bluegem:notification_duration:p95_5m",
				Expr:   `histogram_quantile(0.95, sum(rate(bluegem_notification_duration_seconds_bucket[5m])) by (le))`,
			},
		},
	})
}
