package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// operating the bluegem watch server.
func AlertRules() PrometheusRule {
	return newRule("bluegem-alerts", RuleGroup{
		Name: "bluegem-alerts",
		Rules: []Rule{
			alert("BluegemDown", `absent(up{job="bluegem"})`, "2m", "critical",
				"bluegem watch server is down",
				"The bluegem job has been absent for more than 2 minutes."),
			alert("BluegemSchedulerStopped", `bluegem_readyz_up == 0`, "2m", "critical",
				"bluegem scheduler is not running",
				"The readiness probe has reported a stopped scheduler for more than 2 minutes."),
			alert("BluegemAPIErrors",
				`sum(bluegem:api_errors:rate5m) / sum(bluegem:api_requests:rate5m) > 0.25`, "15m", "warning",
				"CSBlueGem API requests are failing",
				"More than 25% of CSBlueGem API requests have failed over the last 15 minutes."),
			alert("BluegemAPIServerErrors",
				`sum(bluegem:api_errors:rate5m{outcome="server_error"}) > 0`, "30m", "warning",
				"CSBlueGem API is returning 5xx responses",
				"The CSBlueGem API has answered with server errors for 30 minutes."),
			alert("BluegemWatchFailing",
				`sum(increase(bluegem_watch_runs_total{result="error"}[1h])) by (watch) > 2`, "0m", "warning",
				"A watch keeps failing",
				"Watch {{ $labels.watch }} failed more than twice in the last hour."),
			alert("BluegemHighErrorRate",
				`bluegem:http_errors:rate5m / bluegem:http_requests:rate5m > 0.05`, "5m", "warning",
				"High HTTP error rate on the watch server",
				"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
			alert("BluegemNotificationFailures",
				`increase(bluegem_notification_failures_total[5m]) > 0`, "1m", "warning",
				"Notification delivery failures detected",
				"One or more new-sale alerts (Discord webhooks) have failed to send."),
		},
	})
}

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert:       name,
		Expr:        expr,
		For:         forDur,
		Labels:      map[string]string{"severity": severity},
		Annotations: map[string]string{"summary": summary, "description": description},
	}
}
