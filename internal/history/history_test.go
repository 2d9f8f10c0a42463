package history

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	m, err := NewManager(filepath.Join(dir, "visits.db"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestVisitAndRecent(t *testing.T) {
	m := newTestManager(t)

	if err := m.Visit("default", "user:1", "STRING"); err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if err := m.Visit("default", "user:2", "HASH"); err != nil {
		t.Fatalf("Visit: %v", err)
	}

	entries, err := m.Recent("default", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "user:2" {
		t.Fatalf("expected most recent visit first, got %s", entries[0].Key)
	}
}

func TestRecentScopedByProfile(t *testing.T) {
	m := newTestManager(t)

	if err := m.Visit("prod", "a", "STRING"); err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if err := m.Visit("staging", "b", "STRING"); err != nil {
		t.Fatalf("Visit: %v", err)
	}

	entries, err := m.Recent("prod", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "a" {
		t.Fatalf("expected profile-scoped results, got %+v", entries)
	}
}

func TestCountAndClear(t *testing.T) {
	m := newTestManager(t)

	m.Visit("default", "a", "STRING")
	m.Visit("default", "b", "STRING")

	count, err := m.Count("default")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	if err := m.Clear("default"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count, err = m.Count("default")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0 after clear, got %d", count)
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 5; i++ {
		m.Visit("default", "k", "STRING")
	}
	entries, err := m.Recent("default", 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(entries))
	}
}
