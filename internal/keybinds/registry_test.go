package keybinds

import "testing"

func TestMatchFallsBackToGlobal(t *testing.T) {
	r := NewDefaultRegistry()
	if action, ok := r.Match(ContextNormal, "?"); !ok || action != ActionOpenHelp {
		t.Fatalf("expected global ? binding to be visible in normal context, got %v %v", action, ok)
	}
}

func TestMatchContextSpecificWins(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextHelp, "q", ActionCloseModal)

	action, ok := r.Match(ContextHelp, "q")
	if !ok || action != ActionCloseModal {
		t.Fatalf("expected context-specific binding to win, got %v %v", action, ok)
	}
}

func TestMatchMultiKeyGoToTop(t *testing.T) {
	r := NewDefaultRegistry()

	_, complete, partial := r.MatchMultiKey(ContextNormal, "g")
	if complete || !partial {
		t.Fatalf("expected partial match on first 'g', got complete=%v partial=%v", complete, partial)
	}

	action, complete, partial := r.MatchMultiKey(ContextNormal, "g")
	if !complete || partial || action != ActionGoToTop {
		t.Fatalf("expected complete go-to-top on second 'g', got action=%v complete=%v partial=%v", action, complete, partial)
	}
}

func TestMatchMultiKeyNonSequenceFallsThrough(t *testing.T) {
	r := NewDefaultRegistry()
	action, complete, partial := r.MatchMultiKey(ContextNormal, "j")
	if !complete || partial || action != ActionNavigateDown {
		t.Fatalf("expected regular single-key match, got action=%v complete=%v partial=%v", action, complete, partial)
	}
}

func TestGetBindingReturnsBoundKeys(t *testing.T) {
	r := NewDefaultRegistry()
	keys := r.GetBinding(ContextNormal, ActionNavigateDown)
	found := false
	for _, k := range keys {
		if k == "j" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'j' among navigate_down bindings, got %v", keys)
	}
}
