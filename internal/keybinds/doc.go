/*
Package keybinds provides context-aware keyboard binding management for
the tree/value/dialog navigator UI.

# Key Concepts

Context Hierarchy:
  - Global: bindings available everywhere (quit, help)
  - Normal: tree/value browsing
  - Search: the filter input
  - Confirm, Protection, DiffPreview, Help: the respective dialog

Keys shadow from specific context to global: a key bound in the current
context wins over a global binding of the same key.

# Multi-Key Sequences

The registry supports the vim-style "gg" sequence for go-to-top, via
MatchMultiKey.

# Example Usage

	registry := NewDefaultRegistry()

	if action, ok := registry.Match(ContextNormal, "enter"); ok {
		// handle action
	}
*/
package keybinds
