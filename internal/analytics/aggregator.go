// Package analytics summarises completion history and how the routine
// templates spend the day.
package analytics

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/routine"
)

// NoTasks marks a day whose resolved template is empty.
const NoTasks = -1

const (
	DefaultWeeklyDays  = 7
	DefaultHeatmapDays = 35
)

// TemplateLister exposes every stored template.
type TemplateLister interface {
	Templates() model.RoutineTemplates
}

type Aggregator struct {
	projector  *routine.Projector
	templates  TemplateLister
	categories routine.CategorySource

	WeeklyDays  int
	HeatmapDays int
}

func NewAggregator(projector *routine.Projector, templates TemplateLister, categories routine.CategorySource) *Aggregator {
	return &Aggregator{
		projector:   projector,
		templates:   templates,
		categories:  categories,
		WeeklyDays:  DefaultWeeklyDays,
		HeatmapDays: DefaultHeatmapDays,
	}
}

// ProgressOverRange returns the progress percent of the n consecutive days
// ending at end, keyed by ISO date. Days without tasks map to NoTasks.
func (a *Aggregator) ProgressOverRange(end time.Time, n int) map[string]int {
	out := make(map[string]int, max(n, 0))
	for _, day := range a.Range(end, n) {
		out[day.Key] = day.Percent
	}
	return out
}

// DayProgress is one day of a progress range.
type DayProgress struct {
	Date      time.Time
	Key       string
	Percent   int
	Completed int
	Total     int
}

// HasTasks reports whether the day had anything scheduled.
func (d DayProgress) HasTasks() bool {
	return d.Percent != NoTasks
}

// Range is ProgressOverRange ordered oldest to newest.
func (a *Aggregator) Range(end time.Time, n int) []DayProgress {
	if n <= 0 {
		return []DayProgress{}
	}
	end = model.StartOfDay(end)
	out := make([]DayProgress, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i)
		completed, total := routine.Counts(a.projector.Project(date))
		percent := NoTasks
		if total > 0 {
			percent = routine.Percent(completed, total)
		}
		out = append(out, DayProgress{
			Date:      date,
			Key:       model.DateKey(date),
			Percent:   percent,
			Completed: completed,
			Total:     total,
		})
	}
	return out
}

// AllocatedDurationByCategory sums the scheduled hours of every task in
// every template by category name. Categories with no hours are left out.
func (a *Aggregator) AllocatedDurationByCategory() map[string]float64 {
	idx := model.NewCategoryIndex(a.categories.Categories())
	out := make(map[string]float64)
	for _, task := range a.templates.Templates().AllTasks() {
		hours, err := model.SpanHours(task.StartTime, task.EndTime)
		if err != nil {
			slog.Debug("skipping unparsable task time", "task_id", task.ID, "start", task.StartTime, "end", task.EndTime)
			continue
		}
		if hours <= 0 {
			continue
		}
		out[idx.Resolve(task.Category).Name] += hours
	}
	return out
}

// CategoryHours is one slice of the allocation breakdown.
type CategoryHours struct {
	Name  string
	Color string
	Hours float64
}

// Allocation is AllocatedDurationByCategory ordered by hours, largest
// first, with each name's display color.
func (a *Aggregator) Allocation() []CategoryHours {
	colors := make(map[string]string)
	for _, c := range a.categories.Categories() {
		if _, ok := colors[c.Name]; !ok {
			colors[c.Name] = c.Color
		}
	}
	totals := a.AllocatedDurationByCategory()
	out := make([]CategoryHours, 0, len(totals))
	for name, hours := range totals {
		color, ok := colors[name]
		if !ok {
			color = model.UncategorizedColor
		}
		out = append(out, CategoryHours{Name: name, Color: color, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Report is everything the analytics screen shows for one day.
type Report struct {
	Today      time.Time
	Weekly     []DayProgress
	Heatmap    []DayProgress
	Allocation []CategoryHours
}

func (a *Aggregator) Report(today time.Time) Report {
	today = model.StartOfDay(today)
	return Report{
		Today:      today,
		Weekly:     a.Range(today, a.WeeklyDays),
		Heatmap:    a.Range(today, a.HeatmapDays),
		Allocation: a.Allocation(),
	}
}

// TotalHours is the sum of the allocation.
func (r Report) TotalHours() float64 {
	total := 0.0
	for _, c := range r.Allocation {
		total += c.Hours
	}
	return total
}

// WeeklyAverage is the mean progress of the weekly days that had tasks.
func (r Report) WeeklyAverage() (int, bool) {
	sum, n := 0, 0
	for _, d := range r.Weekly {
		if d.HasTasks() {
			sum += d.Percent
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / n, true
}
