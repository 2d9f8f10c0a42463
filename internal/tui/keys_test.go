package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/redis-nav/internal/protection"
	"github.com/studiowebux/redis-nav/internal/redisstore"
	"github.com/studiowebux/redis-nav/internal/tree"
	"github.com/studiowebux/redis-nav/internal/worker"
)

type fakeStore struct{}

func (fakeStore) Enumerate(ctx context.Context, pattern string) ([]string, error) {
	return nil, nil
}

func (fakeStore) ProbeType(ctx context.Context, key string) (redisstore.DataType, error) {
	return redisstore.TypeString, nil
}

func (fakeStore) Fetch(ctx context.Context, key string, dt redisstore.DataType) (redisstore.Value, error) {
	return redisstore.Value{Type: redisstore.TypeString, String: "v"}, nil
}

func (fakeStore) TTL(ctx context.Context, key string) (int64, error) {
	return -1, nil
}

func (fakeStore) WriteString(ctx context.Context, key string, value []byte) error {
	return nil
}

func (fakeStore) Delete(ctx context.Context, key string) error {
	return nil
}

func (fakeStore) Close() error { return nil }

func newTestModel(t *testing.T) *Model {
	t.Helper()
	bus := worker.NewBus(fakeStore{})
	t.Cleanup(func() { bus.Close() })
	builder := tree.NewBuilder([]rune{':'})
	policy := protection.NewPolicy(nil)
	m := New(bus, builder, policy, nil, nil, "default", false, "test")
	m.width, m.height = 80, 24
	m.layoutViewport()
	return m
}

func TestSwitchPaneTogglesActivePane(t *testing.T) {
	m := newTestModel(t)
	if m.activePane != PaneTree {
		t.Fatalf("expected default pane Tree, got %v", m.activePane)
	}
	m.handleNormalKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.activePane != PaneValue {
		t.Fatalf("expected pane Value after Tab, got %v", m.activePane)
	}
	m.handleNormalKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.activePane != PaneTree {
		t.Fatalf("expected pane Tree after second Tab, got %v", m.activePane)
	}
}

func TestActivateRowTogglesLeafWithChildren(t *testing.T) {
	m := newTestModel(t)
	entries := []tree.Entry{
		{Key: "a:b", Type: redisstore.TypeString},
		{Key: "a:b:c", Type: redisstore.TypeString},
	}
	m.roots = m.builder.Build(entries)
	// Expand root "a" so its child "b" is among the flattened rows.
	m.roots[0].Expanded = true
	m.rows = tree.Flatten(m.roots)

	// Find the "b" row, the leaf that also has a child "c".
	idx := -1
	for i, row := range m.rows {
		if row.Name == "b" {
			idx = i
		}
	}
	if idx == -1 {
		t.Fatalf("expected to find row 'b' among %+v", m.rows)
	}
	row := m.rows[idx]
	if row.IsFolder {
		t.Fatalf("expected 'b' to be a leaf, not a folder")
	}
	if row.ChildCount != 1 {
		t.Fatalf("expected 'b' to have 1 child, got %d", row.ChildCount)
	}

	m.cursor = idx
	beforeRows := len(m.rows)
	m.activateRow()
	if len(m.rows) <= beforeRows {
		t.Fatalf("expected toggling leaf-with-children to reveal its child row")
	}
}

func TestRefreshActionsDispatchSeparately(t *testing.T) {
	m := newTestModel(t)
	m.selectedKey = "some:key"

	m.handleNormalKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	ev := <-m.bus.Events
	if ev.Kind != worker.EvValueLoaded || ev.Key != "some:key" {
		t.Fatalf("expected refresh-current to fetch the selected key, got %+v", ev)
	}

	m.handleNormalKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	ev = <-m.bus.Events
	if ev.Kind != worker.EvKeysLoaded {
		t.Fatalf("expected refresh-all to enumerate everything, got %+v", ev)
	}
}

func TestEscInNormalModeQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.handleNormalKey(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected esc in normal mode to return a quit command")
	}
}
