package model

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// DefaultTemplateKey names the template used by days without their own.
	DefaultTemplateKey = "default"
)

// RoutineTemplates maps a weekday name or DefaultTemplateKey to its tasks.
type RoutineTemplates map[string][]Task

func DefaultRoutineTemplates() RoutineTemplates {
	return RoutineTemplates{DefaultTemplateKey: []Task{}}
}

// Weekdays lists the template keys in the order the week is presented.
func Weekdays() []string {
	return []string{
		time.Monday.String(),
		time.Tuesday.String(),
		time.Wednesday.String(),
		time.Thursday.String(),
		time.Friday.String(),
		time.Saturday.String(),
		time.Sunday.String(),
	}
}

// TemplateKeys is Weekdays followed by DefaultTemplateKey.
func TemplateKeys() []string {
	return append(Weekdays(), DefaultTemplateKey)
}

// IsTemplateKey reports whether key is a weekday name or the default key.
func IsTemplateKey(key string) bool {
	for _, k := range TemplateKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// WeekdayKey returns the template key for the calendar day of date.
func WeekdayKey(date time.Time) string {
	return date.Weekday().String()
}

// Resolve returns the template for date: its weekday entry when the key
// exists, otherwise the default entry, otherwise nothing.
func (r RoutineTemplates) Resolve(date time.Time) []Task {
	if tasks, ok := r[WeekdayKey(date)]; ok {
		return cloneTasks(tasks)
	}
	if tasks, ok := r[DefaultTemplateKey]; ok {
		return cloneTasks(tasks)
	}
	return nil
}

func (r RoutineTemplates) Clone() RoutineTemplates {
	out := make(RoutineTemplates, len(r))
	for k, tasks := range r {
		out[k] = cloneTasks(tasks)
	}
	return out
}

// AllTasks flattens every template, the default one included.
func (r RoutineTemplates) AllTasks() []Task {
	out := make([]Task, 0)
	for _, key := range TemplateKeys() {
		out = append(out, r[key]...)
	}
	for key, tasks := range r {
		if !IsTemplateKey(key) {
			out = append(out, tasks...)
		}
	}
	return out
}

func DateKey(date time.Time) string {
	return date.Format(DateLayout)
}

func ParseDateKey(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("model: invalid date %q: %w", raw, err)
	}
	return d, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b.In(a.Location()))
}
