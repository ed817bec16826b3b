package model

import (
	"testing"
	"time"
)

func TestCompletionToggleIsItsOwnInverse(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	c := CompletionRecord{}

	if c.IsComplete(day, "t1") {
		t.Fatal("expected absent date to be incomplete")
	}
	if !c.Toggle(day, "t1") || !c.IsComplete(day, "t1") {
		t.Fatal("expected first toggle to complete")
	}
	if c.Toggle(day, "t1") || c.IsComplete(day, "t1") {
		t.Fatal("expected second toggle to revert")
	}
	if ids, ok := c["2024-01-10"]; !ok || len(ids) != 0 {
		t.Fatalf("expected empty set kept for the date, got %v", ids)
	}
}

func TestCompletionCloneIsIndependent(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	c := CompletionRecord{"2024-01-10": {"a", "b"}}
	cp := c.Clone()
	cp.Toggle(day, "a")
	if !c.IsComplete(day, "a") {
		t.Fatal("clone shares storage with original")
	}
}
