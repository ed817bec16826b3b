package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/routine"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/storage"
)

func setupAggregator(t *testing.T) (*Aggregator, *storage.Store) {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	store, err := storage.NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Load(t.Context())
	projector := routine.NewProjector(routine.NewResolver(store), routine.NewTracker(store), store)
	return NewAggregator(projector, store, store), store
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := model.ParseDateKey(raw)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func TestProgressOverRangeNoCompletions(t *testing.T) {
	agg, store := setupAggregator(t)
	if _, err := store.SaveRoutineTemplate(t.Context(), model.DefaultTemplateKey, []model.Task{{Name: "Read"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := agg.ProgressOverRange(mustDate(t, "2024-01-10"), 3)
	want := map[string]int{"2024-01-08": 0, "2024-01-09": 0, "2024-01-10": 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestProgressOverRangeMarksEmptyDays(t *testing.T) {
	agg, store := setupAggregator(t)
	ctx := t.Context()
	saved, err := store.SaveRoutineTemplate(ctx, "Tuesday", []model.Task{{Name: "A"}, {Name: "B"}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	tuesday := mustDate(t, "2024-01-09")
	if _, err := store.ToggleCompletion(ctx, tuesday, saved[0].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	got := agg.ProgressOverRange(mustDate(t, "2024-01-14"), 7)
	if len(got) != 7 {
		t.Fatalf("expected 7 entries, got %v", got)
	}
	if got["2024-01-09"] != 50 {
		t.Fatalf("tuesday = %d, want 50", got["2024-01-09"])
	}
	for _, key := range []string{"2024-01-08", "2024-01-10", "2024-01-14"} {
		if got[key] != NoTasks {
			t.Fatalf("%s = %d, want %d", key, got[key], NoTasks)
		}
	}
	if _, ok := got["2024-01-07"]; ok {
		t.Fatal("range reaches too far back")
	}
}

func TestProgressOverRangeNonPositive(t *testing.T) {
	agg, _ := setupAggregator(t)
	for _, n := range []int{0, -3} {
		if got := agg.ProgressOverRange(time.Now(), n); len(got) != 0 {
			t.Fatalf("n=%d: expected empty map, got %v", n, got)
		}
	}
}

func TestRangeOrderedOldestFirst(t *testing.T) {
	agg, _ := setupAggregator(t)
	days := agg.Range(mustDate(t, "2024-03-01"), 3)
	keys := []string{days[0].Key, days[1].Key, days[2].Key}
	if strings.Join(keys, ",") != "2024-02-28,2024-02-29,2024-03-01" {
		t.Fatalf("unexpected order %v", keys)
	}
}

func TestAllocatedDurationOvernight(t *testing.T) {
	agg, store := setupAggregator(t)
	if _, err := store.SaveRoutineTemplate(t.Context(), model.DefaultTemplateKey, []model.Task{
		{Name: "Gym", StartTime: "22:00", EndTime: "06:00"},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := agg.AllocatedDurationByCategory()
	if len(got) != 1 || got[model.UncategorizedName] != 8.0 {
		t.Fatalf("got %v, want Uncategorized=8", got)
	}
}

func TestAllocatedDurationMergesNamesAndOmitsZero(t *testing.T) {
	agg, store := setupAggregator(t)
	ctx := t.Context()
	cats := append(store.Categories(), model.Category{ID: "cat-work-2", Name: "Work", Color: "#000000"})
	if err := store.SaveCategories(ctx, cats); err != nil {
		t.Fatalf("save categories: %v", err)
	}
	if _, err := store.SaveRoutineTemplate(ctx, "Monday", []model.Task{
		{Name: "Job", StartTime: "09:00", EndTime: "12:00", Category: "cat-003"},
		{Name: "Side job", StartTime: "13:00", EndTime: "14:30", Category: "cat-work-2"},
		{Name: "Same", StartTime: "10:00", EndTime: "10:00", Category: "cat-002"},
		{Name: "Broken", StartTime: "soon", EndTime: "later", Category: "cat-004"},
	}); err != nil {
		t.Fatalf("save monday: %v", err)
	}
	if _, err := store.SaveRoutineTemplate(ctx, model.DefaultTemplateKey, []model.Task{
		{Name: "Dusk", EndTime: "01:00", Category: "cat-005"},
	}); err != nil {
		t.Fatalf("save default: %v", err)
	}

	got := agg.AllocatedDurationByCategory()
	if got["Work"] != 4.5 {
		t.Fatalf("Work = %v, want 4.5 (%v)", got["Work"], got)
	}
	if got["Spiritual"] != 1.0 {
		t.Fatalf("Spiritual = %v, want 1 (%v)", got["Spiritual"], got)
	}
	for _, name := range []string{"Study", "Health"} {
		if _, ok := got[name]; ok {
			t.Fatalf("%s should be omitted: %v", name, got)
		}
	}
	for name, hours := range got {
		if hours <= 0 {
			t.Fatalf("%s has non-positive total %v", name, hours)
		}
	}

	alloc := agg.Allocation()
	if alloc[0].Name != "Work" || alloc[0].Color != "#10B981" {
		t.Fatalf("unexpected allocation order/color: %+v", alloc)
	}
}

func TestReportUsesConfiguredRanges(t *testing.T) {
	agg, _ := setupAggregator(t)
	agg.WeeklyDays = 3
	agg.HeatmapDays = 10
	report := agg.Report(mustDate(t, "2024-01-10").Add(15 * time.Hour))
	if len(report.Weekly) != 3 || len(report.Heatmap) != 10 {
		t.Fatalf("weekly=%d heatmap=%d", len(report.Weekly), len(report.Heatmap))
	}
	if report.Weekly[2].Key != "2024-01-10" {
		t.Fatalf("last weekly day = %s", report.Weekly[2].Key)
	}
	if _, ok := report.WeeklyAverage(); ok {
		t.Fatal("no day had tasks")
	}
	if !strings.Contains(report.Markdown(), "No timed tasks") {
		t.Fatalf("unexpected markdown:\n%s", report.Markdown())
	}
}
