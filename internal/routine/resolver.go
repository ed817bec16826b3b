// Package routine turns stored templates and completion sets into the
// per-day task list the dashboard shows.
package routine

import (
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

// TemplateSource is the read side of the template store.
type TemplateSource interface {
	Template(day string) ([]model.Task, bool)
}

// Resolver picks the template that applies to a calendar date.
type Resolver struct {
	templates TemplateSource
}

func NewResolver(templates TemplateSource) *Resolver {
	return &Resolver{templates: templates}
}

// ResolveTemplateForDate returns the weekday template for date when that
// key exists, even if it is empty, otherwise the default template,
// otherwise nothing. The result is a copy.
func (r *Resolver) ResolveTemplateForDate(date time.Time) []model.Task {
	if tasks, ok := r.templates.Template(model.WeekdayKey(date)); ok {
		return tasks
	}
	if tasks, ok := r.templates.Template(model.DefaultTemplateKey); ok {
		return tasks
	}
	return []model.Task{}
}
