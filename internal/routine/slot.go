package routine

import (
	"strings"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

const (
	defaultSlotStart = "09:00"
	defaultSlotEnd   = "10:00"
)

// SuggestSlot proposes times and a category for a new task appended to
// tasks: it starts where the latest-ending task ends, lasts an hour and
// shares that task's category.
func SuggestSlot(tasks []model.Task) model.Task {
	latest := -1
	var anchor model.Task
	for _, t := range tasks {
		end, err := model.ParseClock(t.EndTime)
		if err != nil {
			continue
		}
		if end > latest {
			latest = end
			anchor = t
		}
	}
	if latest < 0 {
		return model.Task{
			StartTime: defaultSlotStart,
			EndTime:   defaultSlotEnd,
			Category:  model.UncategorizedID,
		}
	}
	category := anchor.Category
	if strings.TrimSpace(category) == "" {
		category = model.UncategorizedID
	}
	return model.Task{
		StartTime: model.FormatClock(latest),
		EndTime:   model.FormatClock(latest + 60),
		Category:  category,
	}
}
