package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal     Context = "global"
	ContextNormal     Context = "normal"
	ContextSearch     Context = "search"
	ContextHelp       Context = "help"
	ContextConfirm    Context = "confirm"
	ContextProtection Context = "protection"
	ContextDiffPreview Context = "diff_preview"
)

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionQuitForce  Action = "quit_force"
	ActionOpenHelp   Action = "open_help"
	ActionCloseModal Action = "close_modal"
	ActionSwitchPane Action = "switch_pane"

	// Navigation (normal mode, tree focused). PageUp/PageDown/GoToTop/
	// GoToBottom double as value-pane scroll intents when the value pane
	// has focus; see Model.activePane.
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"
	ActionToggleExpand Action = "toggle_expand"
	ActionScrollValueUp   Action = "scroll_value_up"
	ActionScrollValueDown Action = "scroll_value_down"

	// Key actions (normal mode)
	ActionEdit        Action = "edit"
	ActionDelete      Action = "delete"
	ActionCopyKey     Action = "copy_key"
	ActionCopyValue   Action = "copy_value"
	ActionRefresh     Action = "refresh"
	ActionRefreshAll  Action = "refresh_all"
	ActionOpenSearch  Action = "open_search"
	ActionOpenHistory Action = "open_history"

	// Text input actions (search mode)
	ActionTextInsertChar Action = "text_insert_char"
	ActionTextBackspace  Action = "text_backspace"
	ActionTextSubmit     Action = "text_submit"
	ActionTextCancel     Action = "text_cancel"

	// Dialog actions
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
	ActionWrite   Action = "write"
)
