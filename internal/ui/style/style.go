// Package style holds the colors and icons shared by the log handler and the
// progress renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Colors used for log levels.
var (
	Slate  = lipgloss.Color("#64748B")
	Red    = lipgloss.Color("#DC2626")
	Yellow = lipgloss.Color("#D97706")
)

// Status icons. Check and Cross mark finished files, Skip marks files left
// untouched, Arrow prefixes causes in error chains.
const (
	Check   = "✓"
	Cross   = "✗"
	Skip    = "-"
	Warning = "!"
	Dot     = "●"
	Arrow   = "→"
)
