package scheduler

import (
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

// StartEvents builds one event per incomplete task of date whose start
// time is still ahead of now.
func StartEvents(date time.Time, tasks []model.DisplayTask, now time.Time) []TaskStartEvent {
	day := model.StartOfDay(date)
	out := make([]TaskStartEvent, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		minutes, err := model.ParseClock(t.StartTime)
		if err != nil {
			continue
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
		if !at.After(now) {
			continue
		}
		out = append(out, TaskStartEvent{
			TaskID:    t.ID,
			Name:      t.Name,
			Date:      model.DateKey(day),
			TriggerAt: at,
		})
	}
	return out
}
