package output

import "github.com/charmbracelet/lipgloss"

// Color constants using ANSI 256-color palette.
const (
	// ColorPrimary is used for directory names (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorMuted is used for tree connectors and the summary line (gray).
	ColorMuted = lipgloss.Color("245")
)

var (
	// DirStyle is used for directory names.
	DirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// FileStyle is used for file names.
	FileStyle = lipgloss.NewStyle()

	// MutedStyle is used for tree connectors and the summary.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
