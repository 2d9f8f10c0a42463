package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerSearchBindings(r)
	registerHelpBindings(r)
	registerConfirmBindings(r)
	registerProtectionBindings(r)
	registerDiffPreviewBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "?", ActionOpenHelp)
	r.Register(ContextGlobal, "esc", ActionCloseModal)
	r.Register(ContextGlobal, "tab", ActionSwitchPane)
}

func registerNormalModeBindings(r *Registry) {
	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextNormal, "pgup", ActionPageUp)
	r.Register(ContextNormal, "pgdown", ActionPageDown)
	r.Register(ContextNormal, "gg", ActionGoToTop)
	r.Register(ContextNormal, "G", ActionGoToBottom)
	r.RegisterMultiple(ContextNormal, []string{"enter", "l", " "}, ActionToggleExpand)
	r.Register(ContextNormal, "ctrl+u", ActionScrollValueUp)
	r.Register(ContextNormal, "ctrl+d", ActionScrollValueDown)

	r.Register(ContextNormal, "q", ActionQuit)
	// Esc with no dialog open quits; this shadows the global esc->CloseModal
	// binding since context-specific matches win over global ones.
	r.Register(ContextNormal, "esc", ActionQuit)
	r.Register(ContextNormal, "e", ActionEdit)
	r.Register(ContextNormal, "d", ActionDelete)
	r.Register(ContextNormal, "y", ActionCopyKey)
	r.Register(ContextNormal, "Y", ActionCopyValue)
	r.Register(ContextNormal, "r", ActionRefresh)
	r.Register(ContextNormal, "R", ActionRefreshAll)
	r.Register(ContextNormal, "/", ActionOpenSearch)
	r.Register(ContextNormal, "H", ActionOpenHistory)
}

func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
	r.Register(ContextSearch, "backspace", ActionTextBackspace)
}

func registerHelpBindings(r *Registry) {
	r.Register(ContextHelp, "q", ActionCloseModal)
	r.Register(ContextHelp, "esc", ActionCloseModal)
	r.Register(ContextHelp, "?", ActionCloseModal)
}

func registerConfirmBindings(r *Registry) {
	r.Register(ContextConfirm, "enter", ActionConfirm)
	r.Register(ContextConfirm, "esc", ActionCancel)
}

func registerProtectionBindings(r *Registry) {
	r.Register(ContextProtection, "esc", ActionCancel)
}

func registerDiffPreviewBindings(r *Registry) {
	r.Register(ContextDiffPreview, "enter", ActionWrite)
	r.Register(ContextDiffPreview, "esc", ActionCancel)
}
