package model

// Status icons shared by the report and the TUI.
// Using simple single-width characters for consistent terminal rendering
const (
	IconOK      = "✓" // File or sample succeeded
	IconFailed  = "✗" // Engine exited non-zero
	IconSkipped = "·" // Extension not eligible
	IconRunning = "→" // Currently being predicted
	IconPending = " " // Not started yet
)
