package config

// Layout constants.
const (
	// DefaultFocusColumn is the initially focused board column (0 = todo).
	DefaultFocusColumn = 0

	// MinColumnWidth is the minimum width for a board column.
	MinColumnWidth = 16

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 80

	// SidePaneWidth is the width of the status and coffee-chat panes.
	SidePaneWidth = 34
)

// Display limits.
const (
	// MaxVisibleTasks limits tasks shown per column before scrolling.
	MaxVisibleTasks = 12

	// MaxMissingDisplayed limits names in the "who's missing" pane.
	MaxMissingDisplayed = 10

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Input constraints.
const (
	MaxInputLength  = 200
	MaxSearchLength = 60
)
