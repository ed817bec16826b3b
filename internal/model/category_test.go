package model

import (
	"errors"
	"testing"
)

func TestDefaultCategoriesStartWithUncategorized(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) != 5 {
		t.Fatalf("expected 5 seed categories, got %d", len(cats))
	}
	if cats[0] != (Category{ID: "cat-001", Name: "Uncategorized", Color: "#A0A0B0"}) {
		t.Fatalf("unexpected first seed: %+v", cats[0])
	}
}

func TestCategoryIndexFallsBack(t *testing.T) {
	idx := NewCategoryIndex([]Category{
		{ID: UncategorizedID, Name: "Misc", Color: "#111111"},
		{ID: "cat-003", Name: "Work", Color: "#10B981"},
	})
	if got := idx.Resolve("cat-003"); got.Name != "Work" {
		t.Fatalf("unexpected resolve: %+v", got)
	}
	if got := idx.Resolve("cat-gone"); got.Name != "Misc" || got.Color != "#111111" {
		t.Fatalf("expected stored Uncategorized entry, got %+v", got)
	}

	bare := NewCategoryIndex(nil)
	if got := bare.Resolve(""); got != Uncategorized() {
		t.Fatalf("expected built-in Uncategorized, got %+v", got)
	}
}

func TestAddCategoryRejectsCaseInsensitiveDuplicate(t *testing.T) {
	_, _, err := AddCategory(DefaultCategories(), "work", "#000000")
	if !errors.Is(err, ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}

	out, added, err := AddCategory(DefaultCategories(), "  Chores ", "#123456")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if len(out) != 6 || added.Name != "Chores" || out[5].ID != added.ID {
		t.Fatalf("unexpected add result: %+v", out)
	}
}

func TestUpdateCategoryRules(t *testing.T) {
	cats := DefaultCategories()
	if _, err := UpdateCategory(cats, UncategorizedID, "Other", ""); !errors.Is(err, ErrUncategorizedImmutable) {
		t.Fatalf("expected ErrUncategorizedImmutable, got %v", err)
	}
	if _, err := UpdateCategory(cats, "cat-002", "HEALTH", ""); !errors.Is(err, ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}
	if _, err := UpdateCategory(cats, "cat-404", "X", ""); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	out, err := UpdateCategory(cats, "cat-002", "study", "#FFFFFF")
	if err != nil {
		t.Fatalf("rename to same name in other case: %v", err)
	}
	if out[1].Name != "study" || out[1].Color != "#FFFFFF" || cats[1].Name != "Study" {
		t.Fatalf("unexpected update result: %+v / original %+v", out[1], cats[1])
	}
}

func TestDeleteCategory(t *testing.T) {
	if _, err := DeleteCategory(DefaultCategories(), UncategorizedID); !errors.Is(err, ErrUncategorizedImmutable) {
		t.Fatalf("expected ErrUncategorizedImmutable, got %v", err)
	}
	out, err := DeleteCategory(DefaultCategories(), "cat-003")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, c := range out {
		if c.ID == "cat-003" {
			t.Fatal("category still present after delete")
		}
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(out))
	}
}

func TestSortCategoriesForDisplay(t *testing.T) {
	in := []Category{
		{ID: "c-z", Name: "zen"},
		{ID: "c-a", Name: "Art"},
		{ID: UncategorizedID, Name: "Uncategorized"},
		{ID: "c-b", Name: "bills"},
	}
	out := SortCategoriesForDisplay(in)
	want := []string{UncategorizedID, "c-a", "c-b", "c-z"}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("position %d: got %s want %s", i, out[i].ID, id)
		}
	}
}
