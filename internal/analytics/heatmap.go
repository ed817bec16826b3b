package analytics

import (
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

// CellState classifies one heatmap cell.
type CellState int

const (
	CellOutOfRange CellState = iota
	CellNoTasks
	CellProgress
)

// HeatmapCell is one day of the calendar grid.
type HeatmapCell struct {
	Date    time.Time
	State   CellState
	Percent int
}

// Level buckets the cell into 0 (nothing done) through 4 (all done).
func (c HeatmapCell) Level() int {
	if c.State != CellProgress || c.Percent <= 0 {
		return 0
	}
	if c.Percent >= 100 {
		return 4
	}
	return 1 + c.Percent*3/100
}

// HeatmapGrid lays days out as Monday-first weeks. Grid days before the
// first or after the last entry of days are CellOutOfRange.
func HeatmapGrid(days []DayProgress) [][]HeatmapCell {
	if len(days) == 0 {
		return nil
	}
	byKey := make(map[string]DayProgress, len(days))
	for _, d := range days {
		byKey[d.Key] = d
	}
	first := model.StartOfDay(days[0].Date)
	last := model.StartOfDay(days[len(days)-1].Date)
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)

	var grid [][]HeatmapCell
	for week := start; !week.After(last); week = week.AddDate(0, 0, 7) {
		row := make([]HeatmapCell, 7)
		for i := range row {
			date := week.AddDate(0, 0, i)
			cell := HeatmapCell{Date: date, State: CellOutOfRange}
			if d, ok := byKey[model.DateKey(date)]; ok {
				if d.HasTasks() {
					cell.State = CellProgress
					cell.Percent = d.Percent
				} else {
					cell.State = CellNoTasks
				}
			}
			row[i] = cell
		}
		grid = append(grid, row)
	}
	return grid
}
