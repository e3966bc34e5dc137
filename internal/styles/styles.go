// Package styles defines the lipgloss styles shared by the browse UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Green
	ErrorCol  = lipgloss.Color("#EF4444") // Red
	TextMuted = lipgloss.Color("#6B7280")

	BorderNormal = lipgloss.Color("#374151")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	StatusOK = lipgloss.NewStyle().
			Foreground(Success)

	StatusError = lipgloss.NewStyle().
			Foreground(ErrorCol)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ListItemNormal = lipgloss.NewStyle()

	ListItemFocused = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// CurrentBadge marks the currently applied theme in the list.
	CurrentBadge = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	HelpBar = lipgloss.NewStyle().
		Foreground(TextMuted)

	PreviewFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderNormal).
			Padding(0, 1)
)
