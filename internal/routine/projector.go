package routine

import (
	"sort"
	"strings"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

// CategorySource lists the known categories.
type CategorySource interface {
	Categories() []model.Category
}

// Projector joins a day's template with its completion set and category
// metadata.
type Projector struct {
	resolver   *Resolver
	tracker    *Tracker
	categories CategorySource
}

func NewProjector(resolver *Resolver, tracker *Tracker, categories CategorySource) *Projector {
	return &Projector{resolver: resolver, tracker: tracker, categories: categories}
}

// Project returns the display tasks for date ordered by start time. Tasks
// with equal start times keep their template order.
func (p *Projector) Project(date time.Time) []model.DisplayTask {
	tasks := p.resolver.ResolveTemplateForDate(date)
	done := p.tracker.CompletedIDs(date)
	idx := model.NewCategoryIndex(p.categories.Categories())

	out := make([]model.DisplayTask, 0, len(tasks))
	for _, task := range tasks {
		cat := idx.Resolve(task.Category)
		out = append(out, model.DisplayTask{
			Task:          task,
			Completed:     done[task.ID],
			CategoryName:  cat.Name,
			CategoryColor: cat.Color,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// DisplayOrder returns the template positions of tasks in the order Project
// lists them, so a 1-based index on screen maps to tasks[order[i-1]].
func DisplayOrder(tasks []model.Task) []int {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return tasks[order[i]].SortKey() < tasks[order[j]].SortKey()
	})
	return order
}

// ProgressPercent is the floored share of date's tasks that are complete,
// or 0 for a day with no tasks.
func (p *Projector) ProgressPercent(date time.Time) int {
	completed, total := Counts(p.Project(date))
	return Percent(completed, total)
}

// Counts returns how many of tasks are completed and how many there are.
func Counts(tasks []model.DisplayTask) (completed, total int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(tasks)
}

// Percent floors completed/total to a whole percentage.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return completed * 100 / total
}

// CurrentTasks returns every incomplete task of date whose window contains
// now, in display order. Only today has current tasks.
func (p *Projector) CurrentTasks(date, now time.Time) []model.DisplayTask {
	if !model.SameDay(date, now) {
		return nil
	}
	return currentTasks(p.Project(date), model.ClockOf(now))
}

// CurrentTask returns the first of CurrentTasks.
func (p *Projector) CurrentTask(date, now time.Time) (model.DisplayTask, bool) {
	current := p.CurrentTasks(date, now)
	if len(current) == 0 {
		return model.DisplayTask{}, false
	}
	return current[0], true
}

func currentTasks(tasks []model.DisplayTask, clock string) []model.DisplayTask {
	var out []model.DisplayTask
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		start, end := strings.TrimSpace(t.StartTime), strings.TrimSpace(t.EndTime)
		if start == "" || end == "" {
			continue
		}
		if start <= clock && clock < end {
			out = append(out, t)
		}
	}
	return out
}
