// Package storage owns the four persisted collections of the routine
// dashboard: routine templates, categories, daily completion sets and
// settings.
//
// Every collection is read once by Load and rewritten in full whenever it is
// mutated. A document that is missing, unreadable, not JSON or not shaped as
// expected is replaced by its default; that never surfaces as an error.
// Write failures do.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

// Store is the single owner of the persisted collections. It is not safe
// for concurrent use; callers drive it from one goroutine.
type Store struct {
	backend   Backend
	validator *Validator

	routines   model.RoutineTemplates
	progress   model.CompletionRecord
	categories []model.Category
	settings   model.Settings
}

// NewStore returns a Store holding the defaults. Call Load to read the
// persisted state.
func NewStore(backend Backend) (*Store, error) {
	if backend == nil {
		return nil, errors.New("storage: nil backend")
	}
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	return &Store{
		backend:    backend,
		validator:  validator,
		routines:   model.DefaultRoutineTemplates(),
		progress:   model.CompletionRecord{},
		categories: model.DefaultCategories(),
		settings:   model.DefaultSettings(),
	}, nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load reads every collection, falling back to its default on any read,
// parse or shape problem.
func (s *Store) Load(ctx context.Context) {
	s.routines = loadDocument(ctx, s, DocRoutines, model.DefaultRoutineTemplates)
	s.progress = loadDocument(ctx, s, DocProgress, func() model.CompletionRecord { return model.CompletionRecord{} })
	s.categories = loadDocument(ctx, s, DocCategories, model.DefaultCategories)
	s.settings = loadDocument(ctx, s, DocSettings, model.DefaultSettings)
	slog.Debug("store loaded",
		"templates", len(s.routines),
		"categories", len(s.categories),
		"tracked_days", len(s.progress),
	)
}

func loadDocument[T any](ctx context.Context, s *Store, name string, fallback func() T) T {
	raw, err := s.backend.Read(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Debug("document missing, using default", "document", name)
		} else {
			slog.Warn("document unreadable, using default", "document", name, "error", err)
		}
		return fallback()
	}
	if err := s.validator.Validate(name, raw); err != nil {
		slog.Warn("document invalid, using default", "document", name, "error", err)
		return fallback()
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Warn("document undecodable, using default", "document", name, "error", err)
		return fallback()
	}
	return out
}

func (s *Store) persist(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", name, err)
	}
	if err := s.backend.Write(ctx, name, append(data, '\n')); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// --- routines ---

// Templates returns a copy of every stored template.
func (s *Store) Templates() model.RoutineTemplates {
	return s.routines.Clone()
}

// Template returns the stored tasks for day and whether the key exists.
func (s *Store) Template(day string) ([]model.Task, bool) {
	tasks, ok := s.routines[day]
	if !ok {
		return nil, false
	}
	return slices.Clone(tasks), true
}

// SaveRoutineTemplate replaces the whole template for day after giving
// every task an id and a category, and persists the routines document.
// The in-memory template is replaced even when the write fails.
func (s *Store) SaveRoutineTemplate(ctx context.Context, day string, tasks []model.Task) ([]model.Task, error) {
	normalized := model.NormalizeTasks(tasks, s.UncategorizedID())
	s.routines[day] = normalized
	slog.Info("routine template saved", "day", day, "tasks", len(normalized))
	if err := s.persist(ctx, DocRoutines, s.routines); err != nil {
		return nil, err
	}
	return slices.Clone(normalized), nil
}

// SaveRoutineTemplates saves only the days of updated whose tasks differ
// from what is stored, and reports whether anything was written.
func (s *Store) SaveRoutineTemplates(ctx context.Context, updated model.RoutineTemplates) (bool, error) {
	days := make([]string, 0, len(updated))
	for day := range updated {
		days = append(days, day)
	}
	sort.Strings(days)

	changed := false
	for _, day := range days {
		tasks := updated[day]
		if current, ok := s.routines[day]; ok && slices.Equal(current, tasks) {
			continue
		}
		s.routines[day] = model.NormalizeTasks(tasks, s.UncategorizedID())
		changed = true
	}
	if !changed {
		return false, nil
	}
	slog.Info("routine templates saved", "days", len(days))
	return true, s.persist(ctx, DocRoutines, s.routines)
}

// --- completion ---

func (s *Store) IsComplete(date time.Time, taskID string) bool {
	return s.progress.IsComplete(date, taskID)
}

// CompletedIDs returns the set of ids completed on date.
func (s *Store) CompletedIDs(date time.Time) map[string]bool {
	return s.progress.IDs(date)
}

// Completion returns a copy of the whole completion record.
func (s *Store) Completion() model.CompletionRecord {
	return s.progress.Clone()
}

// ToggleCompletion flips taskID for date, persists the progress document
// and returns the new state. On a write error the flip stays in memory and
// the new state is still returned.
func (s *Store) ToggleCompletion(ctx context.Context, date time.Time, taskID string) (bool, error) {
	done := s.progress.Toggle(date, taskID)
	slog.Debug("completion toggled", "date", model.DateKey(date), "task_id", taskID, "completed", done)
	if err := s.persist(ctx, DocProgress, s.progress); err != nil {
		return done, err
	}
	return done, nil
}

// --- categories ---

func (s *Store) Categories() []model.Category {
	return slices.Clone(s.categories)
}

func (s *Store) UncategorizedID() string {
	return model.UncategorizedID
}

// SaveCategories replaces the category list. Task references are not
// checked; dangling ones resolve to Uncategorized when displayed.
func (s *Store) SaveCategories(ctx context.Context, categories []model.Category) error {
	s.categories = slices.Clone(categories)
	if s.categories == nil {
		s.categories = []model.Category{}
	}
	slog.Info("categories saved", "count", len(s.categories))
	return s.persist(ctx, DocCategories, s.categories)
}

// --- settings ---

func (s *Store) LoadSettings() model.Settings {
	return s.settings.Clone()
}

// SaveSettings replaces and persists the settings. Keys other than theme
// that were loaded from disk are kept as long as the caller started from
// LoadSettings.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	s.settings = settings.Clone()
	slog.Info("settings saved", "theme", settings.Theme)
	return s.persist(ctx, DocSettings, s.settings)
}
