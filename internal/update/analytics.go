package update

import (
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/analytics"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/views"
)

func (m *Model) refreshReport() {
	if m.svc.Aggregator == nil {
		return
	}
	m.Report = m.svc.Aggregator.Report(m.now())
}

func (m Model) renderAnalyticsView() string {
	if m.svc.Aggregator == nil {
		return m.styles.Muted.Render("analytics unavailable")
	}
	r := m.Report
	weekly := make([]views.DayBarData, 0, len(r.Weekly))
	for _, d := range r.Weekly {
		weekly = append(weekly, views.DayBarData{
			Label:    d.Date.Format("Mon 2"),
			Percent:  d.Percent,
			HasTasks: d.HasTasks(),
		})
	}

	var heat [][]views.HeatCellData
	for _, row := range analytics.HeatmapGrid(r.Heatmap) {
		cells := make([]views.HeatCellData, 0, len(row))
		for _, c := range row {
			cells = append(cells, views.HeatCellData{
				Day:     c.Date.Day(),
				Level:   c.Level(),
				InRange: c.State != analytics.CellOutOfRange,
				Empty:   c.State == analytics.CellNoTasks,
			})
		}
		heat = append(heat, cells)
	}

	total := r.TotalHours()
	alloc := make([]views.AllocationRowData, 0, len(r.Allocation))
	for _, c := range r.Allocation {
		share := 0.0
		if total > 0 {
			share = c.Hours / total * 100
		}
		alloc = append(alloc, views.AllocationRowData{Name: c.Name, Color: c.Color, Hours: c.Hours, Share: share})
	}

	avg, hasAvg := r.WeeklyAverage()
	return views.RenderAnalyticsPanel(m.styles, views.AnalyticsPanelData{
		ReportTitle: "Analytics, " + r.Today.Format("Jan 2 2006"),
		Weekly:      weekly,
		Average:     avg,
		HasAverage:  hasAvg,
		Heatmap:     heat,
		Allocation:  alloc,
		TotalHours:  total,
		BarWidth:    24,
	})
}
