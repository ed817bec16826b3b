package routine

import (
	"context"
	"time"
)

// CompletionStore is the part of the store that records finished tasks.
type CompletionStore interface {
	IsComplete(date time.Time, taskID string) bool
	CompletedIDs(date time.Time) map[string]bool
	ToggleCompletion(ctx context.Context, date time.Time, taskID string) (bool, error)
}

// Tracker answers and flips per-day completion.
type Tracker struct {
	store CompletionStore
}

func NewTracker(store CompletionStore) *Tracker {
	return &Tracker{store: store}
}

func (t *Tracker) IsComplete(date time.Time, taskID string) bool {
	return t.store.IsComplete(date, taskID)
}

// CompletedIDs returns the ids completed on date.
func (t *Tracker) CompletedIDs(date time.Time) map[string]bool {
	return t.store.CompletedIDs(date)
}

// Toggle flips taskID for date, persists it and returns the new state.
func (t *Tracker) Toggle(ctx context.Context, date time.Time, taskID string) (bool, error) {
	return t.store.ToggleCompletion(ctx, date, taskID)
}
