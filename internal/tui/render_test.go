package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/redis-nav/internal/redisstore"
	"github.com/studiowebux/redis-nav/internal/tree"
)

func TestRenderDiffMarksContextAddedRemoved(t *testing.T) {
	diff := renderDiff("a\nb\nc", "a\nX\nc")
	if !strings.Contains(diff, "b") || !strings.Contains(diff, "X") {
		t.Fatalf("expected both removed and added lines present, got %q", diff)
	}
}

func TestRenderDiffHandlesLengthMismatch(t *testing.T) {
	diff := renderDiff("a\nb", "a\nb\nc")
	if !strings.Contains(diff, "+ c") {
		t.Fatalf("expected trailing added line, got %q", diff)
	}
}

func TestTTLStyleThresholds(t *testing.T) {
	cases := []struct {
		ttl  int64
		want lipgloss.AdaptiveColor
	}{
		{-2, colorGray}, {-1, colorGray},
		{10, colorRed}, {59, colorRed},
		{60, colorYellow}, {299, colorYellow}, {300, colorYellow},
		{3600, colorGreen},
	}
	for _, c := range cases {
		if got := ttlStyle(c.ttl).Render("x"); got == "" {
			t.Fatalf("expected non-empty rendered style for ttl=%d", c.ttl)
		}
		if got := ttlStyle(c.ttl).GetForeground(); got != c.want {
			t.Fatalf("ttlStyle(%d) foreground = %v, want %v", c.ttl, got, c.want)
		}
	}
}

func TestTTLLabelMissingAndNoExpiry(t *testing.T) {
	if got := ttlLabel(-2); got != "missing" {
		t.Fatalf("expected missing, got %s", got)
	}
	if got := ttlLabel(-1); got != "no expiry" {
		t.Fatalf("expected no expiry, got %s", got)
	}
}

func TestTTLLabelUnitThresholds(t *testing.T) {
	cases := []struct {
		ttl  int64
		want string
	}{
		{30, "30s"},
		{1800, "30m"},
		{7200, "2h"},
	}
	for _, c := range cases {
		if got := formatTTL(c.ttl); got != c.want {
			t.Fatalf("formatTTL(%d) = %s, want %s", c.ttl, got, c.want)
		}
	}
}

func TestRenderTreeRowChildlessFolderShowsEmptyBox(t *testing.T) {
	row := tree.Row{Name: "empty", IsFolder: true, Expanded: true, ChildCount: 0}
	out := renderTreeRow(row)
	if !strings.Contains(out, "[ ]") {
		t.Fatalf("expected empty-box icon for childless folder, got %q", out)
	}
}

func TestRenderTreeRowFolderShowsChildCount(t *testing.T) {
	row := tree.Row{Name: "user", IsFolder: true, Expanded: true, ChildCount: 3}
	out := renderTreeRow(row)
	if !strings.Contains(out, "(3)") {
		t.Fatalf("expected child count suffix, got %q", out)
	}
	if !strings.Contains(out, "[-]") {
		t.Fatalf("expected expanded folder icon, got %q", out)
	}
}

func TestRenderTreeRowLeafHasNoBrackets(t *testing.T) {
	row := tree.Row{Name: "1", IsFolder: false}
	out := renderTreeRow(row)
	if strings.Contains(out, "[") {
		t.Fatalf("expected no icon brackets for leaf row, got %q", out)
	}
}

func TestRenderTreeRowLeafWithChildrenShowsExpandIcon(t *testing.T) {
	row := tree.Row{Name: "b", IsFolder: false, Expanded: false, ChildCount: 1, FullKey: "a:b"}
	out := renderTreeRow(row)
	if !strings.Contains(out, "[+]") {
		t.Fatalf("expected expand icon for leaf-with-children, got %q", out)
	}
	if !strings.Contains(out, "(1)") {
		t.Fatalf("expected child count suffix for leaf-with-children, got %q", out)
	}
}

func TestRenderValueBodyStringJSON(t *testing.T) {
	v := redisstore.Value{Type: redisstore.TypeString, String: `{"a":1}`}
	out := renderValueBody(v, redisstore.TypeString)
	if !strings.Contains(out, "a") {
		t.Fatalf("expected rendered json to contain key, got %q", out)
	}
}

func TestRenderValueBodyHash(t *testing.T) {
	v := redisstore.Value{Type: redisstore.TypeHash, Hash: []redisstore.Field{{Name: "f", Value: "v"}}}
	out := renderValueBody(v, redisstore.TypeHash)
	if out != "f: v" {
		t.Fatalf("expected hash field line, got %q", out)
	}
}

func TestValueSizeByType(t *testing.T) {
	v := redisstore.Value{Type: redisstore.TypeList, List: []string{"a", "b", "c"}}
	if got := valueSize(v); got != 3 {
		t.Fatalf("expected size 3, got %d", got)
	}
}
