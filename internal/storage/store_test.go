package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

type memoryBackend struct {
	docs     map[string][]byte
	writes   []string
	writeErr error
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{docs: make(map[string][]byte)}
}

func (b *memoryBackend) Read(_ context.Context, name string) ([]byte, error) {
	raw, ok := b.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (b *memoryBackend) Write(_ context.Context, name string, data []byte) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes = append(b.writes, name)
	b.docs[name] = data
	return nil
}

func (b *memoryBackend) Close() error { return nil }

func setupFileStore(t *testing.T) (*Store, *FileBackend) {
	t.Helper()
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("new file backend: %v", err)
	}
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Load(t.Context())
	return store, backend
}

func writeFile(t *testing.T, backend *FileBackend, name, body string) {
	t.Helper()
	if err := os.WriteFile(backend.Path(name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDefaultsWhenFilesMissing(t *testing.T) {
	store, _ := setupFileStore(t)

	tmpl := store.Templates()
	if tasks, ok := tmpl[model.DefaultTemplateKey]; !ok || len(tasks) != 0 || len(tmpl) != 1 {
		t.Fatalf("unexpected default routines: %#v", tmpl)
	}
	cats := store.Categories()
	if len(cats) != 5 || cats[0].ID != model.UncategorizedID {
		t.Fatalf("unexpected default categories: %#v", cats)
	}
	if len(store.Completion()) != 0 {
		t.Fatalf("expected empty completion, got %#v", store.Completion())
	}
	if store.LoadSettings().Theme != "dark" {
		t.Fatalf("unexpected default settings: %#v", store.LoadSettings())
	}
}

func TestLoadFallsBackOnCorruptOrMisshapenFiles(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	writeFile(t, backend, DocRoutines, `{"default": [`)
	writeFile(t, backend, DocCategories, `[{"id": "cat-009", "name": "Only name"}]`)
	writeFile(t, backend, DocProgress, `{"2024-01-10": [1, 2]}`)
	writeFile(t, backend, DocSettings, `{"theme": "light"}`)

	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Load(t.Context())

	if _, ok := store.Template(model.DefaultTemplateKey); !ok {
		t.Fatal("expected default routines after parse failure")
	}
	if got := store.Categories(); len(got) != 5 {
		t.Fatalf("expected seed categories after schema failure, got %#v", got)
	}
	if len(store.Completion()) != 0 {
		t.Fatalf("expected empty completion after schema failure, got %#v", store.Completion())
	}
	if store.LoadSettings().Theme != "light" {
		t.Fatalf("expected valid settings file to load, got %#v", store.LoadSettings())
	}
}

func TestSaveRoutineTemplateRoundTrip(t *testing.T) {
	store, backend := setupFileStore(t)
	ctx := t.Context()

	saved, err := store.SaveRoutineTemplate(ctx, "Monday", []model.Task{
		{Name: "Gym", StartTime: "06:00", EndTime: "07:00"},
		{Name: "Read", StartTime: "21:00", EndTime: "22:00", Category: "cat-002"},
	})
	if err != nil {
		t.Fatalf("save template: %v", err)
	}
	for _, task := range saved {
		if task.ID == "" || task.Category == "" {
			t.Fatalf("task not normalized: %+v", task)
		}
	}
	if saved[0].Category != model.UncategorizedID || saved[1].Category != "cat-002" {
		t.Fatalf("unexpected categories: %+v", saved)
	}

	reloaded, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	reloaded.Load(ctx)
	got, ok := reloaded.Template("Monday")
	if !ok || len(got) != 2 {
		t.Fatalf("unexpected reloaded template: %#v", got)
	}
	if got[0].ID != saved[0].ID || got[1].ID != saved[1].ID {
		t.Fatalf("ids changed across reload: %#v vs %#v", got, saved)
	}

	again, err := reloaded.SaveRoutineTemplate(ctx, "Monday", got)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if again[0].ID != saved[0].ID || again[1].ID != saved[1].ID {
		t.Fatal("ids regenerated on second save")
	}
	if _, ok := reloaded.Template(model.DefaultTemplateKey); !ok {
		t.Fatal("default template lost after saving another day")
	}
}

func TestSaveRoutineTemplatesOnlyWritesChangedDays(t *testing.T) {
	backend := newMemoryBackend()
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := t.Context()
	store.Load(ctx)

	current := store.Templates()
	changed, err := store.SaveRoutineTemplates(ctx, current)
	if err != nil || changed {
		t.Fatalf("expected no-op save, changed=%v err=%v", changed, err)
	}
	if len(backend.writes) != 0 {
		t.Fatalf("unexpected writes: %v", backend.writes)
	}

	current["Friday"] = []model.Task{{Name: "Review week"}}
	changed, err = store.SaveRoutineTemplates(ctx, current)
	if err != nil || !changed {
		t.Fatalf("expected save, changed=%v err=%v", changed, err)
	}
	friday, _ := store.Template("Friday")
	if len(friday) != 1 || friday[0].ID == "" {
		t.Fatalf("friday not normalized: %#v", friday)
	}
}

func TestMutationsRewriteOnlyTheirDocument(t *testing.T) {
	backend := newMemoryBackend()
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := t.Context()
	store.Load(ctx)
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	if _, err := store.ToggleCompletion(ctx, day, "t1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := store.SaveSettings(ctx, model.Settings{Theme: "light"}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := store.SaveCategories(ctx, model.DefaultCategories()[:2]); err != nil {
		t.Fatalf("save categories: %v", err)
	}
	if _, err := store.SaveRoutineTemplate(ctx, "default", nil); err != nil {
		t.Fatalf("save routine: %v", err)
	}

	want := []string{DocProgress, DocSettings, DocCategories, DocRoutines}
	if strings.Join(backend.writes, ",") != strings.Join(want, ",") {
		t.Fatalf("writes = %v, want %v", backend.writes, want)
	}
	if !strings.Contains(string(backend.docs[DocProgress]), `"2024-01-10"`) {
		t.Fatalf("unexpected progress document: %s", backend.docs[DocProgress])
	}
}

func TestToggleCompletionPersistsAndInverts(t *testing.T) {
	store, backend := setupFileStore(t)
	ctx := t.Context()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	done, err := store.ToggleCompletion(ctx, day, "task-1")
	if err != nil || !done {
		t.Fatalf("first toggle: done=%v err=%v", done, err)
	}

	reloaded, _ := NewStore(backend)
	reloaded.Load(ctx)
	if !reloaded.IsComplete(day, "task-1") {
		t.Fatal("completion not persisted")
	}

	done, err = reloaded.ToggleCompletion(ctx, day, "task-1")
	if err != nil || done {
		t.Fatalf("second toggle: done=%v err=%v", done, err)
	}
	if reloaded.IsComplete(day, "task-1") {
		t.Fatal("expected toggle to be its own inverse")
	}
}

func TestWriteFailurePropagates(t *testing.T) {
	backend := newMemoryBackend()
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Load(t.Context())
	diskFull := errors.New("disk full")
	backend.writeErr = diskFull

	err = store.SaveSettings(t.Context(), model.Settings{Theme: "light"})
	if !errors.Is(err, diskFull) {
		t.Fatalf("expected wrapped disk full error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "storage: write settings") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestSaveSettingsKeepsUnknownKeys(t *testing.T) {
	store, backend := setupFileStore(t)
	writeFile(t, backend, DocSettings, `{"theme":"light","font_size":14}`)
	ctx := t.Context()
	store.Load(ctx)

	settings := store.LoadSettings()
	settings.Theme = "dark"
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	raw, err := os.ReadFile(backend.Path(DocSettings))
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if !strings.Contains(string(raw), `"font_size": 14`) || !strings.Contains(string(raw), `"theme": "dark"`) {
		t.Fatalf("unexpected settings document: %s", raw)
	}
}

func TestToggleWriteFailureKeepsMemoryState(t *testing.T) {
	backend := newMemoryBackend()
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Load(t.Context())
	backend.writeErr = errors.New("read-only")
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	done, err := store.ToggleCompletion(t.Context(), day, "task-1")
	if err == nil || !done {
		t.Fatalf("expected flipped state with error, got done=%v err=%v", done, err)
	}
	if !store.IsComplete(day, "task-1") {
		t.Fatal("expected the flip to stay in memory")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	store, _ := setupFileStore(t)
	cats := store.Categories()
	cats[0].Name = "changed"
	if store.Categories()[0].Name != model.UncategorizedName {
		t.Fatal("Categories leaked internal slice")
	}
	tmpl := store.Templates()
	tmpl["Monday"] = []model.Task{{ID: "x"}}
	if _, ok := store.Template("Monday"); ok {
		t.Fatal("Templates leaked internal map")
	}
}
