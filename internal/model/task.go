package model

import (
	"strings"

	"github.com/google/uuid"
)

// Task is one entry of a routine template.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Category  string `json:"category"`
	Notes     string `json:"notes,omitempty"`
}

// DisplayTask is a Task enriched with completion state and category
// display metadata for a single date.
type DisplayTask struct {
	Task
	Completed     bool   `json:"completed"`
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
}

// SortKey is the start time used for ordering; a missing start sorts as
// midnight.
func (t Task) SortKey() string {
	if strings.TrimSpace(t.StartTime) == "" {
		return MidnightClock
	}
	return t.StartTime
}

func NewTaskID() string {
	return "task-" + uuid.NewString()
}

// NormalizeTasks returns a copy of tasks in which every entry has an id and
// a category. Existing ids are kept so saving twice is idempotent.
func NormalizeTasks(tasks []Task, uncategorizedID string) []Task {
	return normalizeTasks(tasks, uncategorizedID, NewTaskID)
}

func normalizeTasks(tasks []Task, uncategorizedID string, newID func() string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.ID) == "" {
			t.ID = newID()
		}
		if strings.TrimSpace(t.Category) == "" {
			t.Category = uncategorizedID
		}
		out = append(out, t)
	}
	return out
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
