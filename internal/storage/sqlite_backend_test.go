package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

func setupSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	backend, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "zenith-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	return backend
}

func TestSQLiteBackendUpsert(t *testing.T) {
	backend := setupSQLite(t)
	ctx := t.Context()
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	backend.now = func() time.Time { return fixed }

	if _, err := backend.Read(ctx, DocRoutines); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := backend.Write(ctx, DocRoutines, []byte(`{"default": []}`)); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := backend.Write(ctx, DocRoutines, []byte(`{"Monday": []}`)); err != nil {
		t.Fatalf("second write: %v", err)
	}
	raw, err := backend.Read(ctx, DocRoutines)
	if err != nil || string(raw) != `{"Monday": []}` {
		t.Fatalf("read %q, %v", raw, err)
	}
	at, err := backend.UpdatedAt(ctx, DocRoutines)
	if err != nil || !at.Equal(fixed) {
		t.Fatalf("updated_at = %v, %v", at, err)
	}
}

func TestStoreOverSQLite(t *testing.T) {
	backend := setupSQLite(t)
	ctx := t.Context()
	store, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Load(ctx)

	if _, err := store.SaveRoutineTemplate(ctx, model.DefaultTemplateKey, []model.Task{{Name: "Meditate"}}); err != nil {
		t.Fatalf("save routine: %v", err)
	}
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	tasks, _ := store.Template(model.DefaultTemplateKey)
	if _, err := store.ToggleCompletion(ctx, day, tasks[0].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	reloaded, err := NewStore(backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	reloaded.Load(ctx)
	if !reloaded.IsComplete(day, tasks[0].ID) {
		t.Fatal("completion not persisted in sqlite")
	}
}

func TestNewSQLiteBackendNilDB(t *testing.T) {
	var db *sql.DB
	if _, err := NewSQLiteBackend(db); err == nil {
		t.Fatal("expected error for nil db")
	}
}
