package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// WatchRuns returns a timeseries panel showing watch runs by result.
func WatchRuns() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Watch Runs").
		Description("Watch runs per hour by watch and result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(increase(`+sel("bluegem_watch_runs_total")+`[1h])) by (watch, result)`,
			"{{watch}} {{result}}", "A",
		)).
		FillOpacity(30).
		LineWidth(1).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// NewSales returns a timeseries panel showing how many sales each watch saw
// for the first time.
func NewSales() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("New Sales").
		Description("Sales first seen per hour by watch").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`bluegem:watch_new_sales:increase1h`, "{{watch}}", "A")).
		FillOpacity(30).
		LineWidth(1).
		Legend(TableLegend("sum")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// LatestPrice returns a timeseries panel tracking the most recent sale price
// seen by each watch.
func LatestPrice() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Latest Sale Price").
		Description("Price of the most recent sale per watch, in the watch currency").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(sel("bluegem_watch_latest_price"), "{{watch}}", "A")).
		FillOpacity(0).
		LineWidth(2).
		Legend(TableLegend("last", "min", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
