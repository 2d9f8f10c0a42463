package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Viewport Padding and Borders
	ViewportBorderWidth  = 2 // width/height consumed by a rounded border
	MainViewHeightOffset = 5 // m.height - 5 for main render (status bar + borders)

	// Three-pane split proportions, matching the tree/value/info-bar layout.
	TreePanePercent  = 30 // tree pane width, percent of total
	ValuePanePercent = 70 // value+info column width, percent of total
	InfoBarHeight    = 3  // lines reserved for the info bar under the value pane

	// Dialog sizing, matching centered_rect(60, 50): dialogs occupy 60% of
	// width and 50% of height, centered over the frame.
	DialogWidthPercent  = 60
	DialogHeightPercent = 50
)
