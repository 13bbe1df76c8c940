package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APIRequestRate returns a timeseries panel showing CSBlueGem API requests
// per second by route.
func APIRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Requests").
		Description("CSBlueGem API requests per second by route").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`bluegem:api_requests:rate5m`, "{{route}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// APIErrorsByOutcome returns a timeseries panel breaking failed API requests
// down by outcome (invalid_request, not_found, server_error, ...).
func APIErrorsByOutcome() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Errors").
		Description("Failed CSBlueGem API requests per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`bluegem:api_errors:rate5m`, "{{outcome}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// APILatency returns a timeseries panel showing p95 API latency by route.
func APILatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Latency (p95)").
		Description("95th percentile CSBlueGem API request duration by route").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(`+sel("bluegem_api_request_duration_seconds_bucket")+`[5m])) by (le, route))`,
			"{{route}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenYellowRed(2, 10)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
