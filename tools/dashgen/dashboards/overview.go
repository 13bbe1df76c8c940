// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/bluegem/tools/dashgen/panels"
)

// BuildOverview constructs the bluegem overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	return dashboard.NewDashboardBuilder("Bluegem Overview").
		Uid("bluegem-overview").
		Tags([]string{"bluegem", "csbluegem"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar()).
		WithRow(dashboard.NewRowBuilder("Overview").
			WithPanel(panels.HealthzStat()).
			WithPanel(panels.ReadyzStat()).
			WithPanel(panels.APISuccessGauge()).
			WithPanel(panels.UptimeStat())).
		WithRow(dashboard.NewRowBuilder("CSBlueGem API").
			WithPanel(panels.APIRequestRate()).
			WithPanel(panels.APIErrorsByOutcome()).
			WithPanel(panels.APILatency())).
		WithRow(dashboard.NewRowBuilder("Watches").
			WithPanel(panels.WatchRuns()).
			WithPanel(panels.NewSales()).
			WithPanel(panels.LatestPrice())).
		WithRow(dashboard.NewRowBuilder("Alerts").
			WithPanel(panels.AlertsSent()).
			WithPanel(panels.NotificationLatency()).
			WithPanel(panels.NotificationFailures())).
		WithRow(dashboard.NewRowBuilder("HTTP").
			WithPanel(panels.RequestRate()).
			WithPanel(panels.LatencyPercentiles()))
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
